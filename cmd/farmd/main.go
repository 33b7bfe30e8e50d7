// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/farming/api"
	"github.com/vechain/farming/builtin/farming"
	"github.com/vechain/farming/log"
	"github.com/vechain/farming/metrics"
	"github.com/vechain/farming/thor"
	"github.com/vechain/farming/thorclient"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "farmd")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "farmd",
		Usage:     "Staking farm reward ledger",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			cacheFlag,
			contractFlag,
			tokensFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			ownerNodeFlag,
			ownerRevisionFlag,
			ownerTimeoutFlag,
			transferTimeoutFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "deposit",
				Usage: "fund tokens, place stakes and open farms from a YAML plan",
				Flags: []cli.Flag{
					dataDirFlag,
					cacheFlag,
					contractFlag,
					planFileFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: depositAction,
			},
			{
				Name:  "reconcile",
				Usage: "list claims drained before a crash and optionally compensate them",
				Flags: []cli.Flag{
					dataDirFlag,
					cacheFlag,
					contractFlag,
					compensateFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: reconcileAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}

	contractAddr, err := thor.ParseAddress(ctx.String(contractFlag.Name))
	if err != nil {
		return fmt.Errorf("-%s: %w", contractFlag.Name, err)
	}
	tokens, err := parseAddresses(ctx.String(tokensFlag.Name))
	if err != nil {
		return fmt.Errorf("-%s: %w", tokensFlag.Name, err)
	}

	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(ctx, dataDir)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := contractOptions{
		Address:         contractAddr,
		Tokens:          tokens,
		OwnerTimeout:    ctx.Duration(ownerTimeoutFlag.Name),
		TransferTimeout: ctx.Duration(transferTimeoutFlag.Name),
	}
	if url := ctx.String(ownerNodeFlag.Name); url != "" {
		opts.Owners = thorclient.NewOwnerResolver(thorclient.New(url), farming.OwnerMethod()).
			WithRevision(ctx.String(ownerRevisionFlag.Name))
	}
	c, err := newContract(store, opts)
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("waiting for in-flight transfers...", "count", c.farming.InFlight())
		c.farming.Close()
	}()

	orphans, err := c.farming.OrphanedSettlements()
	if err != nil {
		return err
	}
	for _, rec := range orphans {
		logger.Warn("claim drained without transfer outcome, run reconcile", "id", rec.ID, "account", rec.Account, "token", rec.TokenID, "amount", rec.Amount)
	}

	handler, err := api.New(c.farming, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   enableMetrics,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(exitSignal)
	apiURL, err := serve(gctx, g, "API", ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	metricsURL := "disabled"
	if enableMetrics {
		if metricsURL, err = serve(gctx, g, "metrics", ctx.String(metricsAddrFlag.Name), metrics.HTTPHandler()); err != nil {
			return err
		}
	}

	printStartupMessage(contractAddr, tokens, dataDir, apiURL, metricsURL, opts.Owners != nil)
	return g.Wait()
}

func depositAction(ctx *cli.Context) error {
	initLogger(ctx)

	path := ctx.String(planFileFlag.Name)
	if path == "" {
		return fmt.Errorf("-%s is required", planFileFlag.Name)
	}
	plan, err := loadPlan(path)
	if err != nil {
		return err
	}
	contractAddr, err := thor.ParseAddress(ctx.String(contractFlag.Name))
	if err != nil {
		return fmt.Errorf("-%s: %w", contractFlag.Name, err)
	}

	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(ctx, dataDir)
	if err != nil {
		return err
	}
	defer closeStore()

	c, err := newContract(store, contractOptions{Address: contractAddr})
	if err != nil {
		return err
	}
	defer c.farming.Close()

	ids, err := c.apply(plan)
	for i, id := range ids {
		fmt.Printf("farm %q created with id %d\n", plan.Farms[i].Name, id)
	}
	return err
}

func reconcileAction(ctx *cli.Context) error {
	initLogger(ctx)

	contractAddr, err := thor.ParseAddress(ctx.String(contractFlag.Name))
	if err != nil {
		return fmt.Errorf("-%s: %w", contractFlag.Name, err)
	}
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(ctx, dataDir)
	if err != nil {
		return err
	}
	defer closeStore()

	c, err := newContract(store, contractOptions{Address: contractAddr})
	if err != nil {
		return err
	}
	defer c.farming.Close()

	return c.reconcile(os.Stdout, ctx.Bool(compensateFlag.Name))
}

func printStartupMessage(contractAddr thor.Address, tokens []thor.Address, dataDir, apiURL, metricsURL string, delegation bool) {
	fmt.Printf(`Starting farmd %v
    Contract     [ %v ]
    Tokens       [ %v ]
    Delegation   [ %v ]
    Data dir     [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		fullVersion(),
		contractAddr,
		tokens,
		func() string {
			if delegation {
				return "owner lookups enabled"
			}
			return "disabled, no owner node"
		}(),
		dataDir,
		apiURL,
		metricsURL,
	)
}
