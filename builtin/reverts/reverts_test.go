// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsRevertErr(t *testing.T) {
	errNoFarm := New("farm not found")

	assert.True(t, IsRevertErr(errNoFarm))
	assert.True(t, IsRevertErr(fmt.Errorf("claim: %w", errNoFarm)))
	assert.True(t, IsRevertErr(pkgerrors.Wrap(errNoFarm, "claim")))
	assert.Equal(t, "farm not found", errNoFarm.Error())

	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr("farm not found"))
	assert.False(t, IsRevertErr(errors.New("disk full")))
}

func TestKind(t *testing.T) {
	notFound := NewNotFound("account not found")
	denied := NewUnauthorized("caller is not the owner")

	r, ok := As(pkgerrors.Wrap(notFound, "claim"))
	assert.True(t, ok)
	assert.Equal(t, KindNotFound, r.Kind())

	r, ok = As(denied)
	assert.True(t, ok)
	assert.Equal(t, KindUnauthorized, r.Kind())

	assert.Equal(t, KindInvalid, New("bad amount").Kind())

	_, ok = As(errors.New("disk full"))
	assert.False(t, ok)
}
