// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/farming/thor"
)

func TestParseAddresses(t *testing.T) {
	addrs, err := parseAddresses(" " + alice.String() + ", ," + token.String())
	require.NoError(t, err)
	assert.Equal(t, []thor.Address{alice, token}, addrs)

	addrs, err = parseAddresses("")
	require.NoError(t, err)
	assert.Empty(t, addrs)

	_, err = parseAddresses("0xzz")
	assert.Error(t, err)
}

func TestNewLogHandler(t *testing.T) {
	var level slog.LevelVar
	level.Set(slog.LevelInfo)

	var buf bytes.Buffer
	l := slog.New(newLogHandler(&buf, &level, true))
	l.Debug("hidden")
	l.Info("shown", "k", 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])

	buf.Reset()
	slog.New(newLogHandler(&buf, &level, false)).Info("terminal")
	assert.Contains(t, buf.String(), "terminal")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)

	url, err := serve(gctx, g, "test", "127.0.0.1:0", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "pong")
	}))
	require.NoError(t, err)

	res, err := http.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))

	cancel()
	assert.NoError(t, g.Wait())

	_, err = serve(context.Background(), g, "test", "256.0.0.1:0", http.NotFoundHandler())
	assert.Error(t, err)
}
