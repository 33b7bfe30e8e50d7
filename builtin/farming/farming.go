// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package farming implements the farm contract: time boxed reward farms
// paid to stakers pro rata to their stake shares, and the claim workflow
// that moves rewards out of the contract's custody.
package farming

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/vechain/farming/builtin/farming/farms"
	"github.com/vechain/farming/builtin/farming/ledger"
	"github.com/vechain/farming/builtin/farming/settlement"
	"github.com/vechain/farming/builtin/solidity"
	"github.com/vechain/farming/co"
	"github.com/vechain/farming/kv"
	"github.com/vechain/farming/log"
	"github.com/vechain/farming/thor"
)

var logger = log.WithContext("pkg", "farming")

var (
	ErrFarmNotFound       = farms.ErrFarmNotFound
	ErrFarmTooEarly       = farms.ErrFarmTooEarly
	ErrFarmDate           = farms.ErrFarmDate
	ErrFarmAmount         = farms.ErrFarmAmount
	ErrFarmAmountTooSmall = farms.ErrFarmAmountTooSmall
)

func SetLogger(l log.Logger) {
	logger = l
}

// Shares reads stake shares from the staking engine.
type Shares interface {
	Totals() (stake, burn *big.Int, err error)
	StakeShares(addr thor.Address) (shares *big.Int, exists bool, err error)
}

// Transferrer sends tokens out of the contract's custody.
type Transferrer interface {
	Transfer(ctx context.Context, beneficiary thor.Address, amount *big.Int, token thor.Address) error
}

// OwnerResolver returns the raw output of getOwner() on a delegate contract.
type OwnerResolver interface {
	Owner(ctx context.Context, delegate thor.Address) ([]byte, error)
}

type Config struct {
	Address     thor.Address // storage namespace of the contract
	Store       kv.Store
	Shares      Shares
	Transferrer Transferrer
	Owners      OwnerResolver // optional, delegated claims fail without it
	Clock       clockwork.Clock

	OwnerTimeout    time.Duration // bounds the owner lookup, zero means none
	TransferTimeout time.Duration // bounds a payout, zero means none
}

// Farming is the farm contract. Every state changing step runs under one
// execution lock and commits atomically.
type Farming struct {
	address     thor.Address
	store       kv.Store
	shares      Shares
	transferrer Transferrer
	owners      OwnerResolver
	clock       clockwork.Clock

	ownerTimeout    time.Duration
	transferTimeout time.Duration

	lock     sync.Mutex
	goes     co.Goes
	inFlight map[settlement.ID]struct{} // drained claims with a running transfer, guarded by lock
}

func New(cfg Config) (*Farming, error) {
	if cfg.Store == nil {
		return nil, errors.New("farming: store is required")
	}
	if cfg.Shares == nil {
		return nil, errors.New("farming: shares source is required")
	}
	if cfg.Transferrer == nil {
		return nil, errors.New("farming: transferrer is required")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Farming{
		address:         cfg.Address,
		store:           cfg.Store,
		shares:          cfg.Shares,
		transferrer:     cfg.Transferrer,
		owners:          cfg.Owners,
		clock:           clock,
		ownerTimeout:    cfg.OwnerTimeout,
		transferTimeout: cfg.TransferTimeout,
		inFlight:        make(map[settlement.ID]struct{}),
	}, nil
}

func (f *Farming) Address() thor.Address {
	return f.address
}

// Close waits for in-flight transfers to resolve.
func (f *Farming) Close() {
	f.goes.Wait()
}

// InFlight returns the number of transfers not yet resolved.
func (f *Farming) InFlight() int {
	return f.goes.Running()
}

func (f *Farming) now() uint64 {
	return uint64(f.clock.Now().UnixNano())
}

type services struct {
	farms       *farms.Service
	ledger      *ledger.Service
	settlements *settlement.Service
}

func newServices(getPutter kv.GetPutter, address thor.Address) *services {
	sctx := solidity.NewContext(address, getPutter)
	return &services{
		farms:       farms.New(sctx),
		ledger:      ledger.New(sctx),
		settlements: settlement.New(sctx),
	}
}

// execute runs fn on a fresh stage with the lock held. The stage is
// committed when fn succeeds and dropped otherwise.
func (f *Farming) execute(fn func(s *services) error) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.executeLocked(fn)
}

func (f *Farming) executeLocked(fn func(s *services) error) error {
	stage := kv.NewStage(f.store)
	if err := fn(newServices(stage, f.address)); err != nil {
		stage.Discard()
		return err
	}
	if err := stage.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit")
	}
	return nil
}

// view runs fn with the lock held and discards anything it writes.
func (f *Farming) view(fn func(s *services) error) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	stage := kv.NewStage(f.store)
	defer stage.Discard()
	return fn(newServices(stage, f.address))
}

// Deposit creates a farm paying amount of token between startDate and
// endDate (unix ns). It returns the farm id.
func (f *Farming) Deposit(name string, token thor.Address, amount *big.Int, startDate, endDate uint64) (uint64, error) {
	var id uint64
	err := f.execute(func(s *services) (err error) {
		id, err = s.farms.Add(name, token, amount, startDate, endDate, f.now())
		return
	})
	if err != nil {
		return 0, err
	}
	metricDeposits().Add(1)
	logger.Info("farm created", "id", id, "name", name, "token", token, "amount", amount, "start", startDate, "end", endDate)
	return id, nil
}
