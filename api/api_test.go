// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/farming/metrics"
	"github.com/vechain/farming/test/testfarm"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func initServer(t *testing.T, opts Options) (*testfarm.Env, *httptest.Server) {
	env := testfarm.New(t)
	handler, err := New(env.Farming, opts)
	require.NoError(t, err)
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return env, ts
}

func httpGet(t *testing.T, url string, headers map[string]string) *http.Response {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	res, err := http.DefaultTransport.RoundTrip(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestRoutes(t *testing.T) {
	env, ts := initServer(t, Options{AllowedOrigins: "*"})
	env.Stake(t, testfarm.Alice, 100)
	env.Deposit(t, 1000, 10)

	for path, code := range map[string]int{
		"/farms":   http.StatusOK,
		"/farms/0": http.StatusOK,
		"/farms/1": http.StatusNotFound,
		"/accounts/" + testfarm.Alice.String() + "/balances":          http.StatusOK,
		"/accounts/" + testfarm.Alice.String() + "/farms/0/unclaimed": http.StatusOK,
		"/settlements/00000000-0000-0000-0000-000000000000":           http.StatusNotFound,
		"/nowhere": http.StatusNotFound,
	} {
		res := httpGet(t, ts.URL+path, nil)
		assert.Equal(t, code, res.StatusCode, path)
	}
}

func TestCompressAndCORS(t *testing.T) {
	env, ts := initServer(t, Options{AllowedOrigins: "https://farm.example"})
	env.Deposit(t, 1000, 10)

	res := httpGet(t, ts.URL+"/farms", map[string]string{
		"Accept-Encoding": "gzip",
		"Origin":          "https://farm.example",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "https://farm.example", res.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "gzip", res.Header.Get("Content-Encoding"))

	zr, err := gzip.NewReader(res.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"name":"farm"`)

	res = httpGet(t, ts.URL+"/farms", map[string]string{"Origin": "https://other.example"})
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsMiddleware(t *testing.T) {
	env, ts := initServer(t, Options{AllowedOrigins: "*", EnableMetrics: true})
	env.Deposit(t, 1000, 10)

	httpGet(t, ts.URL+"/farms/0", nil)
	httpGet(t, ts.URL+"/farms/0", nil)
	httpGet(t, ts.URL+"/farms/5", nil)

	mts := httptest.NewServer(metrics.HTTPHandler())
	t.Cleanup(mts.Close)
	res := httpGet(t, mts.URL, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(res.Body)
	require.NoError(t, err)

	count, ok := families["farmd_api_request_count"]
	require.True(t, ok)
	got := map[string]float64{}
	for _, m := range count.GetMetric() {
		labels := map[string]string{}
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		assert.Equal(t, "farms_get_farm", labels["name"])
		assert.Equal(t, http.MethodGet, labels["method"])
		got[labels["code"]] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"200": 2, "404": 1}, got)

	_, ok = families["farmd_api_duration_ms"]
	assert.True(t, ok)
}

func TestRequestLogger(t *testing.T) {
	_, ts := initServer(t, Options{EnableReqLogger: true})
	res := httpGet(t, ts.URL+"/farms", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
