// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	Counter("claims").Add(1)
	CounterVec("claim_outcomes", []string{"status"}).AddWithLabel(1, map[string]string{"nonsense": "fine"})
	Gauge("transfers_in_flight").Set(3)
	HistogramVec("api_duration_ms", []string{"path"}, BucketHTTPReqs).
		ObserveWithLabels(12, map[string]string{"nonsense": "fine"})

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
