// SPDX-License-Identifier: MIT

package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/dynhung/internal/config"
	"github.com/katalvlaran/dynhung/internal/httpapi"
	"github.com/katalvlaran/dynhung/internal/metrics"
	"github.com/katalvlaran/dynhung/internal/session"
)

type problem struct {
	ID         string    `json:"id"`
	N          int       `json:"n"`
	Assignment []int     `json:"assignment"`
	Cost       float64   `json:"cost"`
	RowDuals   []float64 `json:"row_duals"`
	ColDuals   []float64 `json:"col_duals"`
	Iterations int       `json:"iterations"`
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func testConfig() config.Config {
	return config.Config{
		APIPort:           0,
		APITimeout:        5 * time.Second,
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		RateBurst:         1,
		LogLevel:          "debug",
		Epsilon:           1e-15,
		MaxN:              16,
	}
}

// APISuite drives the handler through an httptest server.
type APISuite struct {
	suite.Suite
	srv      *httptest.Server
	registry *session.Registry
}

func (s *APISuite) SetupTest() {
	reg := prometheus.NewRegistry()
	log := zaptest.NewLogger(s.T())
	s.registry = session.NewRegistry(log, metrics.NewPrometheus(reg, ""), testConfig().MaxN)
	s.srv = httptest.NewServer(httpapi.NewHandler(testConfig(), httpapi.Deps{
		Registry: s.registry,
		Log:      log,
		Gatherer: reg,
	}))
}

func (s *APISuite) TearDownTest() {
	s.srv.Close()
}

func (s *APISuite) do(method, path, body string) (*http.Response, []byte) {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, rd)
	require.NoError(s.T(), err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.srv.Client().Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	return resp, data
}

func (s *APISuite) decodeProblem(data []byte) problem {
	var env struct {
		Data problem `json:"data"`
	}
	require.NoError(s.T(), json.Unmarshal(data, &env), string(data))

	return env.Data
}

func (s *APISuite) decodeError(data []byte) apiError {
	var e apiError
	require.NoError(s.T(), json.Unmarshal(data, &e), string(data))

	return e
}

func (s *APISuite) create(body string) problem {
	resp, data := s.do(http.MethodPost, "/api/problems", body)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode, string(data))
	p := s.decodeProblem(data)
	require.Equal(s.T(), "/api/problems/"+p.ID, resp.Header.Get("Location"))

	return p
}

func (s *APISuite) TestLifecycle() {
	p := s.create(`{"cost": [[4, 1, 3], [2, 0, 5], [3, 2, 2]]}`)
	require.Equal(s.T(), 3, p.N)
	require.Equal(s.T(), 5.0, p.Cost)
	require.Equal(s.T(), []int{1, 0, 2}, p.Assignment)

	resp, data := s.do(http.MethodGet, "/api/problems/"+p.ID, "")
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	require.Equal(s.T(), p, s.decodeProblem(data))

	resp, data = s.do(http.MethodPut, "/api/problems/"+p.ID+"/rows",
		`{"cost": [[4, 1, 3], [2, 0, 5], [0, 9, 9]], "changed": [2]}`)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode, string(data))
	up := s.decodeProblem(data)
	require.Equal(s.T(), 3.0, up.Cost)
	require.Equal(s.T(), []int{2, 1, 0}, up.Assignment)

	resp, data = s.do(http.MethodPut, "/api/problems/"+p.ID+"/cols",
		`{"flat": [1, 1, 3, 1, 0, 5, 1, 9, 9], "changed": [0]}`)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode, string(data))
	require.Equal(s.T(), 4.0, s.decodeProblem(data).Cost)

	resp, _ = s.do(http.MethodDelete, "/api/problems/"+p.ID, "")
	require.Equal(s.T(), http.StatusNoContent, resp.StatusCode)

	resp, data = s.do(http.MethodGet, "/api/problems/"+p.ID, "")
	require.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
	require.Equal(s.T(), "not_found", s.decodeError(data).Error.Code)
	require.Equal(s.T(), 0, s.registry.Len())
}

func (s *APISuite) TestFlatCreate() {
	p := s.create(`{"flat": [1, 2, 3, 4]}`)
	require.Equal(s.T(), 2, p.N)
	require.Equal(s.T(), 5.0, p.Cost)
}

func (s *APISuite) TestValidationErrors() {
	cases := []struct {
		name, method, path, body string
		status                   int
		code                     string
	}{
		{"empty body", http.MethodPost, "/api/problems", "", http.StatusBadRequest, "bad_request"},
		{"bad json", http.MethodPost, "/api/problems", `{"cost": [[1,`, http.StatusBadRequest, "bad_request"},
		{"unknown field", http.MethodPost, "/api/problems", `{"costs": [[1]]}`, http.StatusBadRequest, "bad_request"},
		{"neither form", http.MethodPost, "/api/problems", `{}`, http.StatusBadRequest, "bad_request"},
		{"both forms", http.MethodPost, "/api/problems", `{"cost": [[1]], "flat": [1]}`, http.StatusBadRequest, "bad_request"},
		{"ragged", http.MethodPost, "/api/problems", `{"cost": [[1, 2], [3]]}`, http.StatusUnprocessableEntity, "shape"},
		{"rectangular", http.MethodPost, "/api/problems", `{"cost": [[1, 2]]}`, http.StatusUnprocessableEntity, "shape"},
		{"flat not square", http.MethodPost, "/api/problems", `{"flat": [1, 2, 3]}`, http.StatusUnprocessableEntity, "shape"},
		{"too large", http.MethodPost, "/api/problems", `{"flat": [` + strings.TrimSuffix(strings.Repeat("1,", 17*17), ",") + `]}`, http.StatusUnprocessableEntity, "too_large"},
		{"bad id", http.MethodGet, "/api/problems/nope", "", http.StatusBadRequest, "bad_request"},
		{"unknown route", http.MethodGet, "/api/nothing", "", http.StatusNotFound, "not_found"},
	}
	for _, tc := range cases {
		resp, data := s.do(tc.method, tc.path, tc.body)
		require.Equal(s.T(), tc.status, resp.StatusCode, "%s: %s", tc.name, data)
		require.Equal(s.T(), tc.code, s.decodeError(data).Error.Code, tc.name)
	}
}

func (s *APISuite) TestUpdateErrorsLeaveSessionUnchanged() {
	p := s.create(`{"cost": [[4, 1, 3], [2, 0, 5], [3, 2, 2]]}`)
	path := "/api/problems/" + p.ID

	resp, data := s.do(http.MethodPut, path+"/rows", `{"flat": [1, 2, 3, 4, 5, 6, 7, 8, 9], "changed": [3]}`)
	require.Equal(s.T(), http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(s.T(), "index", s.decodeError(data).Error.Code)

	resp, data = s.do(http.MethodPut, path+"/cols", `{"flat": [1, 2, 3, 4], "changed": [0]}`)
	require.Equal(s.T(), http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(s.T(), "shape", s.decodeError(data).Error.Code)

	resp, _ = s.do(http.MethodPut, "/api/problems/00000000-0000-0000-0000-000000000000/rows",
		`{"flat": [1], "changed": [0]}`)
	require.Equal(s.T(), http.StatusNotFound, resp.StatusCode)

	_, data = s.do(http.MethodGet, path, "")
	require.Equal(s.T(), p, s.decodeProblem(data))
}

func (s *APISuite) TestHealthAndMetrics() {
	resp, data := s.do(http.MethodGet, "/healthz", "")
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	require.Equal(s.T(), "ok", string(data))

	s.create(`{"flat": [1, 2, 3, 4]}`)
	resp, data = s.do(http.MethodGet, "/metrics", "")
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	require.Contains(s.T(), string(data), "dynhung_solver_solves_total 1")
	require.Contains(s.T(), string(data), "dynhung_session_active 1")
}

func (s *APISuite) TestContentType() {
	req, err := http.NewRequest(http.MethodPost, s.srv.URL+"/api/problems", bytes.NewBufferString(`{"flat":[1]}`))
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", "text/plain")
	resp, err := s.srv.Client().Do(req)
	require.NoError(s.T(), err)
	resp.Body.Close()
	require.Equal(s.T(), http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	h := httpapi.NewHandler(cfg, httpapi.Deps{
		Registry: session.NewRegistry(nil, nil, cfg.MaxN),
		Gatherer: prometheus.NewRegistry(),
	})

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/problems/"+"00000000-0000-0000-0000-000000000000", nil))
	require.Equal(t, http.StatusNotFound, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/problems/"+"00000000-0000-0000-0000-000000000000", nil))
	require.Equal(t, http.StatusTooManyRequests, second.Code)

	// liveness is answered ahead of the limiter
	health := httptest.NewRecorder()
	h.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, health.Code)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	cfg := testConfig()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	h := httpapi.NewHandler(cfg, httpapi.Deps{
		Registry: session.NewRegistry(nil, nil, cfg.MaxN),
		Gatherer: prometheus.NewRegistry(),
	})
	srv := httpapi.NewServer(cfg, zaptest.NewLogger(t), h)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
