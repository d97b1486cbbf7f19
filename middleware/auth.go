package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"gitea.com/go-chi/session"
	"go.uber.org/zap"

	"github.com/blogem/proof-calc/authenticator"
	"github.com/blogem/proof-calc/models"
	"github.com/blogem/proof-calc/userctx"
)

// Session keys written by the login callback
const (
	SessionUserIDKey   = "user_id"
	SessionNicknameKey = "user_nickname"
)

// Operator resolves who is making the request and stores it in the context.
// A bearer token wins over the browser session; with neither the request is
// anonymous. A bearer token that is present but fails verification is rejected
// rather than treated as anonymous. verifier may be nil when OIDC is not
// configured, in which case any bearer token is rejected.
//
// The session middleware must run before this one.
func Operator(verifier authenticator.BearerVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if raw, ok := bearerToken(r); ok {
				if verifier == nil {
					writeUnauthorized(w, "bearer tokens are not accepted by this server")
					return
				}
				claims, err := verifier.VerifyBearer(ctx, raw)
				if err != nil {
					logger.Info("rejected bearer token",
						zap.String("ip", getIPAddress(r)),
						zap.Error(err),
					)
					writeUnauthorized(w, "invalid bearer token")
					return
				}
				ctx = userctx.SetOperatorID(ctx, claims.Subject())
				ctx = userctx.SetDisplayName(ctx, claims.DisplayName())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			sess := session.GetSession(r)
			if userID, ok := sess.Get(SessionUserIDKey).(string); ok && userID != "" {
				ctx = userctx.SetOperatorID(ctx, userID)
				if nickname, ok := sess.Get(SessionNicknameKey).(string); ok {
					ctx = userctx.SetDisplayName(ctx, nickname)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOperator rejects anonymous requests with 401
func RequireOperator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userctx.GetOperatorID(r.Context()) == "" {
			writeUnauthorized(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.NewErrorResponse(models.KindUnauthorized, message))
}
