// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
	"github.com/MKhiriev/go-pos-sync/models"
)

const restPrefix = "/rest/v1/"

type restRemoteService struct {
	client *utils.HTTPClient

	apiKey     string
	healthPath string
	token      string

	logger *logger.Logger
}

// NewRESTRemoteService constructs an HTTP/REST implementation of
// [RemoteService] speaking the PostgREST-style dialect of the hosted data
// service. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewRESTRemoteService(adapterCfg config.Adapter, logger *logger.Logger) (RemoteService, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &restRemoteService{
		client:     client,
		apiKey:     adapterCfg.APIKey,
		healthPath: adapterCfg.HealthPath,
		logger:     logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteService]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests. When no
// user token is set, the project API key is used as the bearer instead.
func (r *restRemoteService) SetToken(token string) {
	r.token = strings.TrimSpace(token)
}

// Token implements [RemoteService].
func (r *restRemoteService) Token() string {
	return r.token
}

func (r *restRemoteService) request(ctx context.Context) *resty.Request {
	bearer := r.token
	if bearer == "" {
		bearer = r.apiKey
	}

	return r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("apikey", r.apiKey).
		SetHeader("Authorization", "Bearer "+bearer)
}

// Query implements [RemoteService]. It GETs /rest/v1/{table} with each
// filter entry rendered as an eq. query parameter, e.g.
// ?client_ref=eq.abc&store_id=eq.s1.
func (r *restRemoteService) Query(ctx context.Context, table string, filter models.Filter) ([]models.RemoteRecord, error) {
	var records []models.RemoteRecord

	req := r.request(ctx).SetResult(&records)
	for column, value := range filter {
		req.SetQueryParam(column, "eq."+value)
	}

	resp, err := req.Get(restPrefix + table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}

	return records, nil
}

// Insert implements [RemoteService]. It POSTs the record to
// /rest/v1/{table} with "Prefer: return=representation" so the response
// carries the stored row including the server-assigned id.
func (r *restRemoteService) Insert(ctx context.Context, table string, record models.RemoteRecord) (models.RemoteRecord, error) {
	var stored []models.RemoteRecord

	resp, err := r.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(record).
		SetResult(&stored).
		Post(restPrefix + table)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}

	if len(stored) == 0 {
		return nil, fmt.Errorf("insert %s: empty representation in response", table)
	}

	return stored[0], nil
}

// Update implements [RemoteService]. It PATCHes /rest/v1/{table} scoped by
// the eq. filter, returning the updated representations.
func (r *restRemoteService) Update(ctx context.Context, table string, filter models.Filter, changes models.RemoteRecord) ([]models.RemoteRecord, error) {
	var updated []models.RemoteRecord

	req := r.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(changes).
		SetResult(&updated)
	for column, value := range filter {
		req.SetQueryParam(column, "eq."+value)
	}

	resp, err := req.Patch(restPrefix + table)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, fmt.Errorf("update %s: %w", table, err)
	}

	return updated, nil
}

// InvokeProcedure implements [RemoteService]. It POSTs args to
// /rest/v1/rpc/{name} and returns the raw JSON body for the caller to
// decode.
func (r *restRemoteService) InvokeProcedure(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	if args == nil {
		args = map[string]any{}
	}

	resp, err := r.request(ctx).
		SetBody(args).
		Post(restPrefix + "rpc/" + name)
	if err != nil {
		return nil, fmt.Errorf("rpc %s: %w", name, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, fmt.Errorf("rpc %s: %w", name, err)
	}

	return json.RawMessage(resp.Body()), nil
}

// Ping implements [RemoteService]. It GETs the configured health path; any
// transport or HTTP error means the backend is unreachable.
func (r *restRemoteService) Ping(ctx context.Context) error {
	resp, err := r.request(ctx).Get(r.healthPath)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	return nil
}
