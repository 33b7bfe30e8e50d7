// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"time"
)

// requestLogger logs every request at debug level once it is served.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{w, http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Debug("API Request",
			"DurationMs", time.Since(start).Milliseconds(),
			"URI", r.URL.String(),
			"Method", r.Method,
			"Status", rec.statusCode,
		)
	})
}
