package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/handlers"
)

type contextKey string

const captainIDKey contextKey = "captain_id"

const (
	msgMissingToken = "missing bearer token"
	msgInvalidToken = "invalid or expired token"
)

var ErrInvalidSubject = errors.New("middleware: token subject is not a captain id")

// Auth verifies an HS256 bearer token and stores its subject as the captain ID
func Auth(secret []byte, issuer string) func(http.Handler) http.Handler {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			captainID, err := parseCaptainID(parser, secret, raw)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := WithCaptainID(r.Context(), captainID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseCaptainID(parser *jwt.Parser, secret []byte, raw string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidSubject
	}
	return id, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// WithCaptainID stores the authenticated captain in ctx
func WithCaptainID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, captainIDKey, id)
}

// GetCaptainID returns the captain authenticated by Auth
func GetCaptainID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(captainIDKey).(uuid.UUID)
	return id, ok
}
