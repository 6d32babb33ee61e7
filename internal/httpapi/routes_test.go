package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/draftloop/draft-backend/internal/auth"
	"github.com/draftloop/draft-backend/internal/draft"
	"github.com/draftloop/draft-backend/internal/room"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	rm := room.New(ctx, draft.DefaultConfig(), zap.NewNop())
	au := auth.New(auth.Config{
		SessionSecret: "0123456789abcdef0123456789abcdef",
		SessionTTL:    time.Hour,
	}, nil, zap.NewNop())
	return SetupRoutes(rm, nil, au, zap.NewNop())
}

func TestHealthz(t *testing.T) {
	h := testHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBoxesRequireLogin(t *testing.T) {
	h := testHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boxes/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeWithoutSession(t *testing.T) {
	h := testHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
