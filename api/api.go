// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/farming/api/accounts"
	"github.com/vechain/farming/api/farms"
	"github.com/vechain/farming/api/settlements"
	"github.com/vechain/farming/builtin/farming"
	"github.com/vechain/farming/log"
)

var logger = log.WithContext("pkg", "api")

// DefaultTrackLimit is how many accepted claims are kept queryable before
// their record is written.
const DefaultTrackLimit = 4096

type Options struct {
	AllowedOrigins  string
	EnableReqLogger bool
	EnableMetrics   bool
	TrackLimit      int
}

// New return api router
func New(farming *farming.Farming, opts Options) (http.Handler, error) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}
	if opts.TrackLimit <= 0 {
		opts.TrackLimit = DefaultTrackLimit
	}

	router := mux.NewRouter()

	subs, err := settlements.New(farming, opts.TrackLimit)
	if err != nil {
		return nil, err
	}
	subs.Mount(router, "/settlements")
	farms.New(farming).
		Mount(router, "/farms")
	accounts.New(farming, subs).
		Mount(router, "/accounts")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
	)(handler)

	if opts.EnableReqLogger {
		handler = requestLogger(handler)
	}
	return handler, nil
}
