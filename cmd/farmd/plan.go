// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/farming/thor"
)

// defaultStartIn delays farms that set no start, so the deposit is not
// already in the past when it is made.
const defaultStartIn = time.Minute

// Plan describes tokens to fund, stakes to place and farms to open.
//
//	tokens:
//	  - address: 0x...
//	    holders: [0x..., 0x...]
//	    mint: "1000000"
//	stakes:
//	  - account: 0x...
//	    amount: "100"
//	farms:
//	  - name: weekly
//	    token: 0x...
//	    amount: "1000"
//	    startIn: 1m
//	    duration: 168h
type Plan struct {
	Tokens []TokenPlan `yaml:"tokens"`
	Stakes []StakePlan `yaml:"stakes"`
	Farms  []FarmPlan  `yaml:"farms"`
}

// TokenPlan registers holders and mints into the contract custody.
type TokenPlan struct {
	Address string   `yaml:"address"`
	Holders []string `yaml:"holders"`
	Mint    string   `yaml:"mint"`
}

type StakePlan struct {
	Account string `yaml:"account"`
	Amount  string `yaml:"amount"`
}

// FarmPlan opens one farm. Start wins over StartIn when both are set.
type FarmPlan struct {
	Name     string        `yaml:"name"`
	Token    string        `yaml:"token"`
	Amount   string        `yaml:"amount"`
	Start    time.Time     `yaml:"start"`
	StartIn  time.Duration `yaml:"startIn"`
	Duration time.Duration `yaml:"duration"`
}

func loadPlan(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open plan")
	}
	defer f.Close()
	return parsePlan(f)
}

func parsePlan(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var plan Plan
	if err := dec.Decode(&plan); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode plan")
	}
	return &plan, nil
}

func parseAmount(s, field string) (*big.Int, error) {
	v, ok := math.ParseBig256(s)
	if !ok || v.Sign() < 0 {
		return nil, errors.Errorf("%s: invalid amount %q", field, s)
	}
	return v, nil
}

func parseAddress(s, field string) (thor.Address, error) {
	addr, err := thor.ParseAddress(s)
	if err != nil {
		return thor.Address{}, errors.WithMessagef(err, "%s: address %q", field, s)
	}
	return addr, nil
}

// schedule returns the farm window in unix ns.
func (p *FarmPlan) schedule(now time.Time) (start, end uint64, err error) {
	if p.Duration <= 0 {
		return 0, 0, errors.Errorf("farm %q: duration must be positive", p.Name)
	}
	begin := p.Start
	if begin.IsZero() {
		startIn := p.StartIn
		if startIn == 0 {
			startIn = defaultStartIn
		}
		begin = now.Add(startIn)
	}
	if begin.UnixNano() < 0 {
		return 0, 0, errors.Errorf("farm %q: start before 1970", p.Name)
	}
	return uint64(begin.UnixNano()), uint64(begin.Add(p.Duration).UnixNano()), nil
}

// apply executes the plan in order: tokens, stakes, farms. It stops at the
// first failure; steps already done stay done.
func (c *contract) apply(plan *Plan) ([]uint64, error) {
	holder := c.farming.Address()
	for i, tp := range plan.Tokens {
		addr, err := parseAddress(tp.Address, "tokens")
		if err != nil {
			return nil, err
		}
		token := c.token(addr)
		if err := token.Register(holder); err != nil {
			return nil, errors.WithMessagef(err, "token #%d", i)
		}
		for _, h := range tp.Holders {
			haddr, err := parseAddress(h, "holders")
			if err != nil {
				return nil, err
			}
			if err := token.Register(haddr); err != nil {
				return nil, errors.WithMessagef(err, "token #%d", i)
			}
		}
		if tp.Mint != "" {
			amount, err := parseAmount(tp.Mint, "mint")
			if err != nil {
				return nil, err
			}
			if err := token.Mint(holder, amount); err != nil {
				return nil, errors.WithMessagef(err, "token #%d", i)
			}
		}
		logger.Info("token funded", "token", addr, "holders", len(tp.Holders), "mint", tp.Mint)
	}

	for i, sp := range plan.Stakes {
		account, err := parseAddress(sp.Account, "stakes")
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(sp.Amount, "stakes")
		if err != nil {
			return nil, err
		}
		if err := c.pool.Stake(account, amount); err != nil {
			return nil, errors.WithMessagef(err, "stake #%d", i)
		}
	}

	ids := make([]uint64, 0, len(plan.Farms))
	for i := range plan.Farms {
		fp := &plan.Farms[i]
		token, err := parseAddress(fp.Token, "farms")
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(fp.Amount, "farms")
		if err != nil {
			return nil, err
		}
		start, end, err := fp.schedule(c.now())
		if err != nil {
			return nil, err
		}
		id, err := c.farming.Deposit(fp.Name, token, amount, start, end)
		if err != nil {
			return nil, errors.WithMessagef(err, "farm %q", fp.Name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
