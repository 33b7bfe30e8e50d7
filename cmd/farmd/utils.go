// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/farming/api/utils/fpath"
	"github.com/vechain/farming/kv"
	"github.com/vechain/farming/log"
	"github.com/vechain/farming/lvldb"
	"github.com/vechain/farming/thor"
)

var (
	defaultContract = thor.BytesToAddress([]byte("farming"))
	poolAddress     = thor.BytesToAddress([]byte("stakepool"))
)

func defaultDataDir() string {
	if home, err := fpath.HomeDir(); err == nil {
		return filepath.Join(home, ".farmd")
	}
	return ""
}

func initLogger(ctx *cli.Context) {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))
	log.SetDefault(newLogHandler(os.Stdout, &level, ctx.Bool(jsonLogsFlag.Name)))
}

func newLogHandler(out io.Writer, level *slog.LevelVar, jsonLogs bool) slog.Handler {
	if jsonLogs {
		return log.JSONHandler(out, level)
	}
	useColor := false
	if f, ok := out.(*os.File); ok {
		useColor = (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
	}
	return log.NewTerminalHandler(out, level, useColor)
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir at '%v'", dataDir)
	}
	return dataDir, nil
}

// openStore opens the farm database under dataDir behind a read cache.
func openStore(ctx *cli.Context, dataDir string) (kv.Store, func(), error) {
	dir := filepath.Join(dataDir, "farm.db")
	db, err := lvldb.New(dir, lvldb.Options{})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open farm database at '%v'", dir)
	}
	store, err := kv.NewCachedStore(db, ctx.Int(cacheFlag.Name))
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, func() {
		logger.Info("closing farm database...")
		if err := db.Close(); err != nil {
			logger.Warn("failed to close farm database", "err", err)
		}
	}, nil
}

func parseAddresses(s string) ([]thor.Address, error) {
	var addrs []thor.Address
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		addr, err := thor.ParseAddress(item)
		if err != nil {
			return nil, errors.WithMessagef(err, "address %q", item)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

// serve runs handler on addr until ctx is done. The listener is bound
// before serve returns, so the returned URL is usable immediately.
func serve(ctx context.Context, g *errgroup.Group, name, addr string, handler http.Handler) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.Wrapf(err, "listen %s addr [%v]", name, addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}

	g.Go(func() error {
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "%s server", name)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("stopping " + name + " server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return "http://" + listener.Addr().String() + "/", nil
}
