package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/speaktime/speaktime-api/internal/middleware"
	"github.com/speaktime/speaktime-api/internal/model"
	"github.com/speaktime/speaktime-api/internal/validation"
)

func testValidator(t *testing.T) *validation.Validator {
	t.Helper()

	v, err := validation.New()
	require.NoError(t, err)

	return v
}

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func testCaller(t *testing.T) *model.User {
	t.Helper()

	id, err := bson.ObjectIDFromHex("68b1d2e4f0a1b2c3d4e5f601")
	require.NoError(t, err)

	return &model.User{ID: id, Username: "marie", Email: "marie@example.com"}
}

// serve routes the request through r, impersonating caller the way the
// authentication guard would. A nil caller leaves the request anonymous.
func serve(t *testing.T, r chi.Router, caller *model.User, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if caller != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), caller))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
