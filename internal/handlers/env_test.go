package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mbalagam/marketplace/internal/activity"
	"github.com/mbalagam/marketplace/internal/handlers"
	"github.com/mbalagam/marketplace/internal/service"
	"github.com/mbalagam/marketplace/internal/store"
	"github.com/mbalagam/marketplace/internal/token"
	httpserver "github.com/mbalagam/marketplace/internal/transport/http"
)

type testEnv struct {
	T *testing.T
	E *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	alog, err := activity.NewLogger(t.TempDir(), zap.NewNop(), nil, nil)
	require.NoError(t, err)
	issuer := &token.Issuer{Secret: []byte("test-secret"), TTL: time.Minute}

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		ItemHandler:     &handlers.ItemHandler{Catalog: &service.CatalogService{Store: st, Activity: alog}},
		PurchaseHandler: &handlers.PurchaseHandler{Purchases: &service.PurchaseService{Store: st, Activity: alog}},
		AuthHandler:     &handlers.AuthHandler{Users: &service.UserService{Store: st, Activity: alog, Tokens: issuer}},
		ActivityHandler: &handlers.ActivityHandler{Activity: &service.ActivityService{Store: st, Activity: alog}},
		AdminHandler:    &handlers.AdminHandler{Admin: &service.AdminService{Store: st, Activity: alog}},
	})

	return &testEnv{T: t, E: e}
}

func (env *testEnv) doJSONRequest(method, path string, body any) *httptest.ResponseRecorder {
	env.T.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) signup(username string) {
	env.T.Helper()
	rec := env.doJSONRequest(http.MethodPost, "/api/signup", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(env.T, http.StatusCreated, rec.Code)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeJSON[map[string]string](t, rec)
	return resp["detail"]
}
