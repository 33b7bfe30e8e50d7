// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/farming/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the farm database",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 4096,
		Usage: "number of storage entries kept in the read cache",
	}
	contractFlag = cli.StringFlag{
		Name:  "contract",
		Value: defaultContract.String(),
		Usage: "address of the farm contract, which holds the reward custody",
	}
	tokensFlag = cli.StringFlag{
		Name:  "tokens",
		Usage: "comma separated list of reward token addresses paid out by the contract",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8679",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	ownerNodeFlag = cli.StringFlag{
		Name:  "owner-node",
		Usage: "URL of the thor node used to look up delegate owners (delegated claims are refused if unset)",
	}
	ownerRevisionFlag = cli.StringFlag{
		Name:  "owner-revision",
		Value: "best",
		Usage: "block revision owner lookups are evaluated at",
	}
	ownerTimeoutFlag = cli.DurationFlag{
		Name:  "owner-timeout",
		Value: 10 * time.Second,
		Usage: "timeout of one owner lookup",
	}
	transferTimeoutFlag = cli.DurationFlag{
		Name:  "transfer-timeout",
		Usage: "timeout of one reward transfer (0 means none)",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	planFileFlag = cli.StringFlag{
		Name:  "file",
		Usage: "path to the YAML plan of tokens, stakes and farms",
	}
	compensateFlag = cli.BoolFlag{
		Name:  "compensate",
		Usage: "credit orphaned claims back to their accounts",
	}
)
