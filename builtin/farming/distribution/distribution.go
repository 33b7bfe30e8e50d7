// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package distribution computes how much of a farm's reward has been released
// and the cumulative reward per stake share. Everything here is pure.
package distribution

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
)

// SessionInterval is the length of one reward session in nanoseconds.
const SessionInterval uint64 = 1_000_000_000

var (
	// Denominator scales the reward-per-share accumulator (10^24).
	Denominator = new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(24))

	ErrOverflow = errors.New("reward arithmetic overflows 256 bits")
)

// Schedule is the immutable part of a farm the calculation depends on.
type Schedule struct {
	Amount    *big.Int
	StartDate uint64
	EndDate   uint64
}

// Sessions returns the number of whole sessions in the schedule.
func (s Schedule) Sessions() uint64 {
	if s.EndDate <= s.StartDate {
		return 0
	}
	return (s.EndDate - s.StartDate) / SessionInterval
}

// RewardPerSession is amount / sessions, floored. Zero if the schedule has no
// whole session. Dividing by the session count rather than by the duration
// in nanoseconds truncates differently when amount is not a multiple of
// the session count.
func (s Schedule) RewardPerSession() *big.Int {
	sessions := s.Sessions()
	if sessions == 0 || s.Amount == nil {
		return new(big.Int)
	}
	return new(big.Int).Quo(s.Amount, new(big.Int).SetUint64(sessions))
}

// Distribution is a snapshot of a farm's release progress.
type Distribution struct {
	Undistributed *big.Int     // not yet released into the pool
	Unclaimed     *big.Int     // released so far
	RPS           *uint256.Int // cumulative reward per share, scaled by Denominator
	RewardRound   uint64       // last processed session
}

// New returns the snapshot of a freshly funded farm.
func New(amount *big.Int) *Distribution {
	return &Distribution{
		Undistributed: new(big.Int).Set(amount),
		Unclaimed:     new(big.Int),
		RPS:           new(uint256.Int),
		RewardRound:   0,
	}
}

// Copy returns a deep copy. Nil fields are normalized to zero.
func (d *Distribution) Copy() *Distribution {
	c := &Distribution{
		Undistributed: new(big.Int),
		Unclaimed:     new(big.Int),
		RPS:           new(uint256.Int),
		RewardRound:   d.RewardRound,
	}
	if d.Undistributed != nil {
		c.Undistributed.Set(d.Undistributed)
	}
	if d.Unclaimed != nil {
		c.Unclaimed.Set(d.Unclaimed)
	}
	if d.RPS != nil {
		c.RPS.Set(d.RPS)
	}
	return c
}

// Calculate advances last to time now. It returns false when the farm has
// not started yet, in which case the caller must keep last as is. Neither
// schedule nor last are modified.
//
// With no eligible stake the released reward still moves from undistributed
// to unclaimed but the accumulator does not grow.
func Calculate(sched Schedule, last *Distribution, totalStaked *big.Int, now uint64) (*Distribution, bool, error) {
	if now < sched.StartDate {
		return nil, false, nil
	}
	next := last.Copy()
	if next.Undistributed.Sign() == 0 {
		// fully paid out
		return next, true, nil
	}

	perSession := sched.RewardPerSession()
	round := (now - sched.StartDate) / SessionInterval
	if perSession.Sign() == 0 || round <= last.RewardRound {
		return next, true, nil
	}
	next.RewardRound = round

	added := new(big.Int).SetUint64(round - last.RewardRound)
	added.Mul(added, perSession)
	if added.Cmp(next.Undistributed) > 0 {
		// last step, release what is left
		added.Set(next.Undistributed)
		steps, rem := new(big.Int).QuoRem(added, perSession, new(big.Int))
		next.RewardRound = last.RewardRound + steps.Uint64()
		if rem.Sign() > 0 {
			next.RewardRound++
		}
	}
	next.Unclaimed.Add(next.Unclaimed, added)
	next.Undistributed.Sub(next.Undistributed, added)

	if totalStaked == nil || totalStaked.Sign() <= 0 {
		return next, true, nil
	}
	growth, err := scaledShare(added, totalStaked)
	if err != nil {
		return nil, false, err
	}
	if _, overflow := next.RPS.AddOverflow(next.RPS, growth); overflow {
		return nil, false, ErrOverflow
	}
	return next, true, nil
}

// scaledShare returns added * Denominator / totalStaked with a 512-bit
// intermediate product.
func scaledShare(added, totalStaked *big.Int) (*uint256.Int, error) {
	a, overflow := uint256.FromBig(added)
	if overflow {
		return nil, ErrOverflow
	}
	s, overflow := uint256.FromBig(totalStaked)
	if overflow {
		return nil, ErrOverflow
	}
	z, overflow := new(uint256.Int).MulDivOverflow(a, Denominator, s)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

// RewardDelta returns shares * (rps - checkpoint) / Denominator, floored.
// A checkpoint ahead of rps yields zero.
func RewardDelta(shares *big.Int, rps, checkpoint *uint256.Int) (*big.Int, error) {
	if shares == nil || shares.Sign() <= 0 || rps == nil {
		return new(big.Int), nil
	}
	diff := new(uint256.Int).Set(rps)
	if checkpoint != nil {
		if checkpoint.Gt(rps) {
			return new(big.Int), nil
		}
		diff.Sub(diff, checkpoint)
	}
	s, overflow := uint256.FromBig(shares)
	if overflow {
		return nil, ErrOverflow
	}
	z, overflow := new(uint256.Int).MulDivOverflow(s, diff, Denominator)
	if overflow {
		return nil, ErrOverflow
	}
	return z.ToBig(), nil
}
