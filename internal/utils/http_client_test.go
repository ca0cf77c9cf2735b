package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewHTTPClient_SetsUserAgent(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	client := NewHTTPClient()

	if _, err := client.R().Get(srv.URL); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if gotUserAgent != userAgent {
		t.Errorf("expected User-Agent %q, got %q", userAgent, gotUserAgent)
	}
}

func TestNewHTTPClient_IndependentInstances(t *testing.T) {
	// каждый адаптер получает свой пул соединений
	first := NewHTTPClient()
	second := NewHTTPClient()

	if first.Client == second.Client {
		t.Fatal("expected independent *resty.Client instances")
	}

	first.SetBaseURL("https://store-one.example")
	if second.BaseURL == first.BaseURL {
		t.Error("base URL of one client leaked into another")
	}
}

func TestHTTPClient_RequestBuilderUsable(t *testing.T) {
	client := NewHTTPClient()

	if req := client.R(); req == nil {
		t.Fatal("expected non-nil request from embedded resty client")
	}
}
