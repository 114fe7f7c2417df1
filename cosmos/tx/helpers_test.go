package tx_test

import (
	"bytes"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	sdk "github.com/cosmos/cosmos-sdk/types"
	distributiontypes "github.com/cosmos/cosmos-sdk/x/distribution/types"

	"github.com/cbrit/withdraw-commission/cosmos"
	"github.com/cbrit/withdraw-commission/cosmos/tx"
	"github.com/cbrit/withdraw-commission/crypto"
	"github.com/cbrit/withdraw-commission/log"
)

const (
	testChainID = "sommelier-3"
	testMemo    = "Withdraw validator commission"
)

type fixture struct {
	keyPair          *crypto.KeyPair
	encodingConfig   *cosmos.EncodingConfig
	accountAddress   string
	validatorAddress string
	fee              tx.FeePolicy
}

func newFixture(t *testing.T, seed byte) *fixture {
	t.Helper()

	keyPair, err := crypto.NewKeyPairFromPrivateKey(bytes.Repeat([]byte{seed}, 32))
	require.NoError(t, err)

	accountAddress, err := keyPair.GetAddress("somm")
	require.NoError(t, err)
	validatorAddress, err := keyPair.GetAddress("sommvaloper")
	require.NoError(t, err)

	encodingConfig, err := cosmos.MakeEncodingConfig("somm", "sommvaloper")
	require.NoError(t, err)

	fee, err := tx.NewFeePolicy("usomm", math.NewInt(1000), 200000)
	require.NoError(t, err)

	return &fixture{
		keyPair:          keyPair,
		encodingConfig:   encodingConfig,
		accountAddress:   accountAddress,
		validatorAddress: validatorAddress,
		fee:              fee,
	}
}

func (f *fixture) provider(t *testing.T, chainID string) tx.TxProvider {
	t.Helper()

	provider, err := tx.NewTxProvider(f.keyPair, chainID, f.fee, testMemo, 0, log.Default(), f.encodingConfig.TxConfig)
	require.NoError(t, err)
	return provider
}

func (f *fixture) messages() []sdk.Msg {
	return []sdk.Msg{distributiontypes.NewMsgWithdrawValidatorCommission(f.validatorAddress)}
}

func (f *fixture) metadata() *tx.SigningMetadata {
	return tx.NewSigningMetadata(f.accountAddress, 1234, 56)
}
