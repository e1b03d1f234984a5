package api_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/nounkey/internal/api"
	"github.com/knowledge-engine/nounkey/internal/config"
	"github.com/knowledge-engine/nounkey/internal/key"
	"github.com/knowledge-engine/nounkey/internal/normalizer"
)

func setupServer() *api.Server {
	cfg := config.Load()
	logger := logrus.New().WithField("test", "api")
	n := normalizer.New(cfg.Normalizer, key.Parser{}, logger)
	return api.NewServer(n, cfg.Server, logger)
}

func serve(server *api.Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func TestHandleParse(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantKey   string
		wantIndex int
	}{
		{"Plain key", `{"key": "Thing"}`, "Thing", 0},
		{"Ordinal key", `{"key": "478th Thing"}`, "Thing", 477},
		{"Matching index", `{"key": "1st Thing", "index": 0}`, "Thing", 0},
		{"Explicit index", `{"key": "Thing", "index": 49}`, "Thing", 49},
	}

	server := setupServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(server, http.MethodPost, "/api/v1/parse", tt.body)
			require.Equal(t, http.StatusOK, rr.Code)

			var resp api.ParseResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKey, resp.Key)
			assert.Equal(t, tt.wantIndex, resp.Index)
		})
	}
}

func TestHandleParseMismatch(t *testing.T) {
	server := setupServer()

	rr := serve(server, http.MethodPost, "/api/v1/parse", `{"key": "4th Person", "index": 10}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "10 was provided for index param when key '4th Person' contains an nth value, but they do not match", resp.Error)
}

func TestHandleParseBadRequests(t *testing.T) {
	server := setupServer()

	assert.Equal(t, http.StatusBadRequest, serve(server, http.MethodPost, "/api/v1/parse", `{not json`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(server, http.MethodPost, "/api/v1/parse", `{"key": ""}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(server, http.MethodPost, "/api/v1/parse", `{"key": "Thing", "index": -1}`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(server, http.MethodGet, "/api/v1/parse", "").Code)
}

func TestHandleParseBatch(t *testing.T) {
	server := setupServer()

	body := `{"items": [{"key": "2nd Thing"}, {"key": "1st Thing", "index": 1}, {"key": "Thing", "index": 3}]}`
	rr := serve(server, http.MethodPost, "/api/v1/parse/batch", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.BatchResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)

	assert.Equal(t, api.BatchResultView{Raw: "2nd Thing", Key: "Thing", Index: 1}, resp.Results[0])
	assert.Equal(t, "1st Thing", resp.Results[1].Raw)
	assert.Equal(t, "1 was provided for index param when key '1st Thing' contains an nth value, but they do not match", resp.Results[1].Error)
	assert.Equal(t, api.BatchResultView{Raw: "Thing", Key: "Thing", Index: 3}, resp.Results[2])
}

func TestHandleParseBatchTooLarge(t *testing.T) {
	server := setupServer()
	server.Normalizer.Config.MaxBatchSize = 1

	rr := serve(server, http.MethodPost, "/api/v1/parse/batch", `{"items": [{"key": "a"}, {"key": "b"}]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestHandleBuild(t *testing.T) {
	server := setupServer()

	rr := serve(server, http.MethodGet, "/api/v1/build?key=Thing&index=1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.BuildResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "2nd Thing", resp.Key)

	assert.Equal(t, http.StatusBadRequest, serve(server, http.MethodGet, "/api/v1/build?key=Thing&index=x", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(server, http.MethodGet, "/api/v1/build?key=Thing&index=-2", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(server, http.MethodGet, "/api/v1/build?index=0", "").Code)

	rr = serve(server, http.MethodGet, "/api/v1/build?key=Thing&index="+strconv.Itoa(math.MaxInt), "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), key.ErrIndexOutOfRange.Error())
}

func TestHandleStatus(t *testing.T) {
	server := setupServer()
	serve(server, http.MethodPost, "/api/v1/parse", `{"key": "2nd Thing"}`)
	serve(server, http.MethodPost, "/api/v1/parse", `{"key": "2nd Thing", "index": 0}`)

	rr := serve(server, http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.StatusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Parsed)
	assert.Equal(t, int64(1), resp.Mismatches)
	assert.NotEmpty(t, resp.Uptime)
}
