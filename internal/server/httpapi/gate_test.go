package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate(t *testing.T) {
	now := time.Now()
	codec, err := auth.NewCodec("a-secret", "r-secret", 15*time.Minute, time.Hour,
		auth.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	p := auth.Payload{SubjectID: 42, SubjectEmail: "bob@example.com"}
	access, err := codec.Issue(auth.Access, p)
	require.NoError(t, err)
	refresh, err := codec.Issue(auth.Refresh, p)
	require.NoError(t, err)

	var seen auth.Payload
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.PayloadFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})
	h := Gate(codec)(next)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"error":"No token provided"}`},
		{"wrong scheme", "Basic " + access, http.StatusUnauthorized, `{"error":"No token provided"}`},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, `{"error":"No token provided"}`},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized, `{"error":"Invalid or expired token"}`},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized, `{"error":"Invalid or expired token"}`},
		{"valid", "Bearer " + access, http.StatusTeapot, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}

	assert.Equal(t, p, seen)
}

func TestGate_ExpiredToken(t *testing.T) {
	now := time.Now()
	codec, err := auth.NewCodec("a-secret", "r-secret", 15*time.Minute, time.Hour,
		auth.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	tok, err := codec.Issue(auth.Access, auth.Payload{SubjectID: 1, SubjectEmail: "a@b.c"})
	require.NoError(t, err)

	now = now.Add(16 * time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	Gate(codec)(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, rec.Body.String())
}
