// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/farming/builtin/reverts"
	"github.com/vechain/farming/lvldb"
	"github.com/vechain/farming/thor"
)

var (
	alice = thor.BytesToAddress([]byte("alice"))
	token = thor.BytesToAddress([]byte("reward-token"))
)

const planYAML = `
tokens:
  - address: 0x00000000000000007265776172642d746f6b656e
    holders: [0x000000000000000000000000000000616c696365]
    mint: "1000"
stakes:
  - account: 0x000000000000000000000000000000616c696365
    amount: "100"
farms:
  - name: first
    token: 0x00000000000000007265776172642d746f6b656e
    amount: "0x3e8"
    startIn: 1m
    duration: 10s
  - name: pinned
    token: 0x00000000000000007265776172642d746f6b656e
    amount: "500"
    start: 2030-01-02T03:04:05Z
    duration: 1h
`

func newTestContract(t *testing.T) (*contract, *clockwork.FakeClock) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	clock := clockwork.NewFakeClockAt(time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC))
	c, err := newContract(db, contractOptions{Address: defaultContract, Tokens: []thor.Address{token}, Clock: clock})
	require.NoError(t, err)
	t.Cleanup(func() {
		c.farming.Close()
		db.Close()
	})
	return c, clock
}

func TestParsePlan(t *testing.T) {
	plan, err := parsePlan(strings.NewReader(planYAML))
	require.NoError(t, err)

	require.Len(t, plan.Tokens, 1)
	assert.Equal(t, "1000", plan.Tokens[0].Mint)
	require.Len(t, plan.Farms, 2)
	assert.Equal(t, time.Minute, plan.Farms[0].StartIn)
	assert.Equal(t, 10*time.Second, plan.Farms[0].Duration)
	assert.Equal(t, time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC), plan.Farms[1].Start.UTC())

	empty, err := parsePlan(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Farms)

	_, err = parsePlan(strings.NewReader("farms:\n  - name: x\n    rate: 5\n"))
	assert.Error(t, err)
}

func TestFarmPlanSchedule(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	start, end, err := (&FarmPlan{Duration: time.Hour}).schedule(now)
	require.NoError(t, err)
	assert.Equal(t, uint64(now.Add(defaultStartIn).UnixNano()), start)
	assert.Equal(t, start+uint64(time.Hour), end)

	pinned := now.Add(24 * time.Hour)
	start, _, err = (&FarmPlan{Start: pinned, StartIn: time.Minute, Duration: time.Hour}).schedule(now)
	require.NoError(t, err)
	assert.Equal(t, uint64(pinned.UnixNano()), start)

	_, _, err = (&FarmPlan{Name: "zero"}).schedule(now)
	assert.ErrorContains(t, err, "duration must be positive")
}

func TestApplyPlan(t *testing.T) {
	c, clock := newTestContract(t)
	plan, err := parsePlan(strings.NewReader(planYAML))
	require.NoError(t, err)

	ids, err := c.apply(plan)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1}, ids)

	balance, registered, err := c.token(token).BalanceOf(defaultContract)
	require.NoError(t, err)
	assert.True(t, registered)
	assert.Equal(t, big.NewInt(1000), balance)

	shares, exists, err := c.pool.StakeShares(alice)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, big.NewInt(100), shares)

	farm, err := c.farming.GetFarm(0)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), farm.Amount)
	assert.Equal(t, uint64(clock.Now().Add(time.Minute).UnixNano()), farm.StartDate)

	clock.Advance(time.Minute + 3*time.Second)
	unclaimed, err := c.farming.GetUnclaimedReward(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(300), unclaimed)
}

func TestApplyPlanErrors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		revert bool
	}{
		{"bad token address", "tokens:\n  - address: 0x01\n", false},
		{"bad mint", "tokens:\n  - address: 0x00000000000000007265776172642d746f6b656e\n    mint: lots\n", false},
		{"zero stake", "stakes:\n  - account: 0x000000000000000000000000000000616c696365\n    amount: \"0\"\n", true},
		{"farm too small", "farms:\n  - name: tiny\n    token: 0x00000000000000007265776172642d746f6b656e\n    amount: \"5\"\n    duration: 10s\n", true},
		{"farm in the past", "farms:\n  - name: late\n    token: 0x00000000000000007265776172642d746f6b656e\n    amount: \"5000\"\n    start: 2000-01-01T00:00:00Z\n    duration: 10s\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContract(t)
			plan, err := parsePlan(strings.NewReader(tt.yaml))
			require.NoError(t, err)

			_, err = c.apply(plan)
			require.Error(t, err)
			assert.Equal(t, tt.revert, reverts.IsRevertErr(err), err.Error())
		})
	}
}
