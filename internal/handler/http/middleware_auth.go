package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [utils.ValidateAndParseSessionToken], and — on success —
// stores the identity session (user id, store id, email) in the request
// context under [utils.SessionCtxKey] before delegating to the next handler.
//
// Requests are rejected with HTTP 401 Unauthorized when the header is
// absent, the bearer token cannot be extracted, or the token fails
// validation (bad signature, wrong issuer, expired, or missing store scope).
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		session, err := utils.ValidateAndParseSessionToken(tokenString, h.app.TokenSignKey, h.app.TokenIssuer)
		if err != nil {
			log.Err(err).Msg("session token rejected")
			http.Error(w, ErrInvalidSessionToken.Error(), http.StatusUnauthorized)
			return
		}

		// Store the session in the context so that downstream handlers can
		// scope every queue and cache operation without re-parsing the token.
		ctx := context.WithValue(r.Context(), utils.SessionCtxKey, session)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
