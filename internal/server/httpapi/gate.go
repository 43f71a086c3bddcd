package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
)

const (
	msgNoToken      = "No token provided"
	msgInvalidToken = "Invalid or expired token"
)

// TokenVerifier is satisfied by *auth.Codec.
type TokenVerifier interface {
	Verify(kind auth.Kind, token string) (auth.Payload, error)
}

// Gate rejects requests without a valid bearer access token and attaches the
// verified payload to the request context. Expired and invalid tokens get the
// same response.
func Gate(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, msgNoToken)
				return
			}

			p, err := v.Verify(auth.Access, token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPayload(r.Context(), p)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get(common.AuthorizationHeader)
	token, ok := strings.CutPrefix(h, common.BearerScheme)
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
