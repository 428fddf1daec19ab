package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/strixcommerce/storefront-platform/internal/utils/response"
)

type sessionContextKey string

const SessionKey = sessionContextKey("cartSession")

const SessionHeader = "X-Cart-Session"

// SessionClaims identifies an anonymous shopping session. The token only
// carries the session ID; there is no user identity behind it.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// SessionMiddleware hands every shopper a signed session token keyed to
// their cart. Requests without a valid token get a fresh session; the token
// is echoed back in the response header either way.
type SessionMiddleware struct {
	signingKey []byte
	ttl        time.Duration
}

func NewSessionMiddleware(signingKey []byte, ttl time.Duration) *SessionMiddleware {
	return &SessionMiddleware{signingKey: signingKey, ttl: ttl}
}

func (m *SessionMiddleware) WithSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		sessionID := m.sessionFromRequest(r)

		if sessionID == "" {

			sessionID = uuid.NewString()

			token, err := m.issueToken(sessionID)
			if err != nil {
				logger.Error("Failed to issue session token", "error", err.Error())
				response.WriteJson(w, http.StatusInternalServerError, response.GeneralError(fmt.Errorf("could not start a session")))

				return
			}

			w.Header().Set(SessionHeader, token)
		} else {
			w.Header().Set(SessionHeader, r.Header.Get(SessionHeader))
		}

		ctx := context.WithValue(r.Context(), SessionKey, sessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (m *SessionMiddleware) sessionFromRequest(r *http.Request) string {

	raw := r.Header.Get(SessionHeader)
	if raw == "" {
		return ""
	}

	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return m.signingKey, nil
	})
	if err != nil || !token.Valid {
		// Expired or tampered token: the shopper silently gets a new cart.
		return ""
	}

	return claims.SessionID
}

func (m *SessionMiddleware) issueToken(sessionID string) (string, error) {

	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(m.signingKey)
}

// SessionFromContext returns the cart session ID set by WithSession.
func SessionFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionKey).(string)

	return sessionID, ok
}
