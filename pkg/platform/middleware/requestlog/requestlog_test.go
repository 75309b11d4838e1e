package requestlog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noid/pkg/requestcontext"
)

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/identifiers/validate", nil)
	ctx := requestcontext.WithRequestID(req.Context(), "req-42")
	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.7", "test")
	h.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, "req-42", line["request_id"])
	assert.Equal(t, "/v1/identifiers/validate", line["path"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
	assert.Equal(t, "203.0.113.0", line["ip_prefix"])
}
