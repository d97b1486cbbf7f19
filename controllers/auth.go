package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"gitea.com/go-chi/session"
	"go.uber.org/zap"

	"github.com/blogem/proof-calc/authenticator"
	"github.com/blogem/proof-calc/middleware"
	"github.com/blogem/proof-calc/userctx"
)

// AuthController handles the browser login flow. After login and logout the
// browser is sent to returnURL.
type AuthController struct {
	returnURL string
	logger    *zap.Logger
}

// NewAuthController creates a new auth controller; an empty returnURL means "/"
func NewAuthController(returnURL string, logger *zap.Logger) *AuthController {
	if returnURL == "" {
		returnURL = "/"
	}
	return &AuthController{returnURL: returnURL, logger: logger}
}

// WhoAmIResponse is the body of GET /
type WhoAmIResponse struct {
	OK         bool   `json:"ok"`
	Service    string `json:"service"`
	SignedIn   bool   `json:"signedIn"`
	OperatorID string `json:"operatorId,omitempty"`
	Operator   string `json:"operator"`
}

// WhoAmI handles GET /, the default landing page after login and logout
func (ac *AuthController) WhoAmI(w http.ResponseWriter, r *http.Request) {
	operatorID := userctx.GetOperatorID(r.Context())
	writeJSON(w, http.StatusOK, WhoAmIResponse{
		OK:         true,
		Service:    "proof-calc",
		SignedIn:   operatorID != "",
		OperatorID: operatorID,
		Operator:   userctx.GetDisplayName(r.Context()),
	})
}

// Login initiates the authentication process
func (ac *AuthController) Login(auth authenticator.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Generate random state
		state, err := generateRandomState()
		if err != nil {
			writeError(w, ac.logger, err)
			return
		}

		// Save the state in the session to validate in callback
		sess := session.GetSession(r)
		if err := sess.Set("state", state); err != nil {
			writeError(w, ac.logger, err)
			return
		}

		http.Redirect(w, r, auth.GetAuthURL(state), http.StatusTemporaryRedirect)
	}
}

// Callback handles the callback from the identity provider
func (ac *AuthController) Callback(auth authenticator.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)

		// Verify state
		storedState, ok := sess.Get("state").(string)
		if !ok || storedState == "" {
			writeBadRequest(w, "state not found in session")
			return
		}
		if r.URL.Query().Get("state") != storedState {
			writeBadRequest(w, "invalid state parameter")
			return
		}

		// Exchange the code for a token
		token, err := auth.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
		if err != nil {
			ac.logger.Info("authorization code exchange failed", zap.Error(err))
			writeUnauthorized(w, "failed to exchange authorization code for a token")
			return
		}

		claims, err := auth.GetClaims(r.Context(), token)
		if err != nil {
			ac.logger.Info("ID token verification failed", zap.Error(err))
			writeUnauthorized(w, "failed to verify ID token")
			return
		}
		if claims.Subject() == "" {
			writeUnauthorized(w, "ID token has no subject")
			return
		}

		_ = sess.Set(middleware.SessionUserIDKey, claims.Subject())
		_ = sess.Set(middleware.SessionNicknameKey, claims.DisplayName())

		// Clear the state from session
		_ = sess.Delete("state")

		ac.logger.Info("operator logged in", zap.String("operator_id", claims.Subject()))
		http.Redirect(w, r, ac.returnURL, http.StatusSeeOther)
	}
}

// Logout forgets the operator stored in the session
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	_ = sess.Delete(middleware.SessionUserIDKey)
	_ = sess.Delete(middleware.SessionNicknameKey)

	http.Redirect(w, r, ac.returnURL, http.StatusSeeOther)
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
