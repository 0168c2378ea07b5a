package server

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/boggle"
	"crosswarped.com/boggle/internal/logging"
	"crosswarped.com/boggle/internal/metrics"
	"crosswarped.com/boggle/pkg/lexicon"
)

func newTestHandler(t *testing.T, opts ...Option) (http.Handler, *prometheus.Registry) {
	t.Helper()
	lex := lexicon.FromWords([]string{"fab", "fabe", "abe", "face", "fgkl", "food"})
	reg := prometheus.NewRegistry()
	opts = append([]Option{
		WithLogger(logging.NewNop()),
		WithMetrics(metrics.NewSolve(reg), reg),
		WithRand(func() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }),
	}, opts...)
	return NewHandler(NewStore(lex), opts...), reg
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestSolve_ArrayBody(t *testing.T) {
	h, _ := newTestHandler(t)

	w := post(t, h, `["A","B","C","D","E","F","G","H","I","J","K","L","M","N","O","P"]`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var words []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &words))
	assert.Equal(t, []string{"fabe", "fab"}, words)
}

func TestSolve_ObjectBody(t *testing.T) {
	h, _ := newTestHandler(t, WithSolverOptions(boggle.WithPruneRule(boggle.PruneExtend)))

	w := post(t, h, `{"width": 4, "board": ["a","b","c","d","e","f","g","h","i","j","k","l","m","n","o","p"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var words []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &words))
	assert.ElementsMatch(t, []string{"fabe", "fgkl", "abe", "fab"}, words)
	assert.Len(t, words[0], 4)
	assert.Len(t, words[len(words)-1], 3)
}

func TestSolve_EmptyResultIsArray(t *testing.T) {
	h, _ := newTestHandler(t)

	w := post(t, h, `["z"]`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSolve_BadRequests(t *testing.T) {
	h, reg := newTestHandler(t, WithMaxWidth(4))

	tests := map[string]string{
		"not json":        `board please`,
		"wrong shape":     `{"board": "abcd"}`,
		"empty board":     `[]`,
		"not square":      `["a","b","c"]`,
		"count mismatch":  `{"width": 3, "board": ["a","b","c","d"]}`,
		"bad letter":      `["a","b","?","d"]`,
		"multi letter":    `["ab","c","d","e"]`,
		"negative width":  `{"width": -1, "board": []}`,
		"too wide":        `{"width": 5, "board": []}`,
		"too wide, array": `["a","a","a","a","a","a","a","a","a","a","a","a","a","a","a","a","a","a","a","a","a","a","a","a","a"]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := post(t, h, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}

	families, err := reg.Gather()
	require.NoError(t, err)
	var rejected float64
	for _, f := range families {
		if f.GetName() != "boggle_solve_requests_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			rejected += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(len(tests)), rejected)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/solve", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestRandom(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/random?width=5", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var letters []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &letters))
	assert.Len(t, letters, 25)

	// The board is accepted back by /solve.
	body, err := json.Marshal(letters)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, post(t, h, string(body)).Code)

	for _, q := range []string{"width=x", "width=0", "width=100"} {
		req := httptest.NewRequest(http.MethodGet, "/random?"+q, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h, _ := newTestHandler(t)
	post(t, h, `["a"]`)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","words":6}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `boggle_solve_requests_total{code="200"} 1`)
	assert.Contains(t, w.Body.String(), "boggle_words_found_count 1")
}

func TestMetricsRouteDisabled(t *testing.T) {
	h := NewHandler(NewStore(lexicon.FromWords(nil)), WithLogger(logging.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDecodeBoard(t *testing.T) {
	width, letters, err := decodeBoard(strings.NewReader(` ["a","b","c","d"] `))
	require.NoError(t, err)
	assert.Equal(t, 2, width)
	assert.Equal(t, []string{"a", "b", "c", "d"}, letters)

	width, _, err = decodeBoard(strings.NewReader(`{"board":["a","b","c","d","e","f","g","h","i"]}`))
	require.NoError(t, err)
	assert.Equal(t, 3, width)
}

func TestStoreReplace(t *testing.T) {
	store := NewStore(lexicon.FromWords([]string{"fab"}))
	h := NewHandler(store,
		WithLogger(logging.NewNop()),
		WithSolverOptions(boggle.WithPruneRule(boggle.PruneExtend)),
	)
	board := `["A","B","C","D","E","F","G","H","I","J","K","L","M","N","O","P"]`

	assert.JSONEq(t, `["fab"]`, post(t, h, board).Body.String())

	old := store.Replace(lexicon.FromWords([]string{"abe", "zzz"}))
	assert.Equal(t, 1, old.Len())
	assert.JSONEq(t, `["abe"]`, post(t, h, board).Body.String())
}
