package tx_test

import (
	"strings"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbrit/withdraw-commission/cosmos/tx"
)

func TestValidateChainID(t *testing.T) {
	for _, chainID := range []string{"sommelier-3", "cosmoshub-4", "osmosis-1", strings.Repeat("a", 50)} {
		assert.NoError(t, tx.ValidateChainID(chainID), chainID)
	}

	for _, chainID := range []string{"", " ", "sommelier 3", "sommelier-3\n", "chain\x00id", strings.Repeat("a", 51)} {
		assert.ErrorIs(t, tx.ValidateChainID(chainID), tx.ErrChainIDParse, "%q", chainID)
	}
}

func TestNewFeePolicy(t *testing.T) {
	fee, err := tx.NewFeePolicy("usomm", math.NewInt(1000), 200000)
	require.NoError(t, err)
	assert.Equal(t, "1000usomm", fee.Amount.String())
	assert.Equal(t, uint64(200000), fee.GasLimit)

	zeroFee, err := tx.NewFeePolicy("usomm", math.ZeroInt(), 200000)
	require.NoError(t, err)
	assert.True(t, zeroFee.Amount.IsZero())

	_, err = tx.NewFeePolicy("1bad", math.NewInt(1000), 200000)
	require.Error(t, err)

	_, err = tx.NewFeePolicy("usomm", math.NewInt(-1), 200000)
	require.Error(t, err)

	_, err = tx.NewFeePolicy("usomm", math.NewInt(1000), 0)
	require.Error(t, err)
}

func TestParseModes(t *testing.T) {
	accountQuery, err := tx.ParseAccountQueryMode("Account-Info")
	require.NoError(t, err)
	assert.Equal(t, tx.AccountQueryAccountInfo, accountQuery)

	_, err = tx.ParseAccountQueryMode("rest")
	require.Error(t, err)

	broadcastMode, err := tx.ParseBroadcastMode("sync")
	require.NoError(t, err)
	assert.Equal(t, tx.BroadcastModeSync, broadcastMode)

	_, err = tx.ParseBroadcastMode("async")
	require.Error(t, err)
}
