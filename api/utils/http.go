// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vechain/farming/builtin/reverts"
	"github.com/vechain/farming/log"
	"github.com/vechain/farming/thor"
)

var logger = log.WithContext("pkg", "api")

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

// HTTPError create an error with http status code.
func HTTPError(cause error, status int) error {
	return &httpError{
		cause:  cause,
		status: status,
	}
}

// BadRequest convenience method to create http bad request error.
func BadRequest(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusBadRequest,
	}
}

// StatusOf picks the response status for an error returned by a handler.
// Contract reverts map by kind, anything else is an internal error.
func StatusOf(err error) int {
	var he *httpError
	if errors.As(err, &he) {
		return he.status
	}
	if re, ok := reverts.As(err); ok {
		switch re.Kind() {
		case reverts.KindNotFound:
			return http.StatusNotFound
		case reverts.KindUnauthorized:
			return http.StatusForbidden
		default:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// HandlerFunc like http.HandlerFunc, but it returns an error.
// The response status is chosen by StatusOf.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc convert HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			status := StatusOf(err)
			if status == http.StatusInternalServerError {
				logger.Warn("request failed", "path", r.URL.Path, "err", err)
			}
			http.Error(w, err.Error(), status)
		}
	}
}

// content types
const (
	JSONContentType = "application/json; charset=utf-8"
)

// ParseJSON parse a JSON object using strict mode.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON response an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	return WriteJSONStatus(w, http.StatusOK, obj)
}

// WriteJSONStatus is WriteJSON with an explicit status code.
func WriteJSONStatus(w http.ResponseWriter, status int, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(obj)
}

// M shortcut for type map[string]any.
type M map[string]any

// AddressVar parses the named route variable as an address.
func AddressVar(r *http.Request, name string) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(r)[name])
	if err != nil {
		return thor.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// Uint64Var parses the named route variable as a decimal integer.
func Uint64Var(r *http.Request, name string) (uint64, error) {
	return parseUint64(mux.Vars(r)[name], name)
}

// Uint64Query parses an optional query parameter, returning def when absent.
func Uint64Query(r *http.Request, name string, def uint64) (uint64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	return parseUint64(s, name)
}

func parseUint64(s, name string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return n, nil
}
