package tx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"
	distributiontypes "github.com/cosmos/cosmos-sdk/x/distribution/types"

	"github.com/cbrit/withdraw-commission/cosmos/tx"
	"github.com/cbrit/withdraw-commission/log"
)

func TestProvideTx_Deterministic(t *testing.T) {
	f := newFixture(t, 0x01)
	provider := f.provider(t, testChainID)

	first, err := provider.ProvideTx(context.Background(), f.messages(), f.metadata())
	require.NoError(t, err)
	second, err := provider.ProvideTx(context.Background(), f.messages(), f.metadata())
	require.NoError(t, err)

	assert.Equal(t, first.SignDoc, second.SignDoc)
	assert.Equal(t, first.Signature, second.Signature)
	assert.Equal(t, first.TxBytes, second.TxBytes)
}

func TestProvideTx_SignDocMatchesTxRaw(t *testing.T) {
	f := newFixture(t, 0x01)
	provider := f.provider(t, testChainID)

	signedTx, err := provider.ProvideTx(context.Background(), f.messages(), f.metadata())
	require.NoError(t, err)

	var raw txtypes.TxRaw
	require.NoError(t, raw.Unmarshal(signedTx.TxBytes))
	require.Len(t, raw.Signatures, 1)
	assert.Equal(t, signedTx.Signature, raw.Signatures[0])

	signDoc := txtypes.SignDoc{
		BodyBytes:     raw.BodyBytes,
		AuthInfoBytes: raw.AuthInfoBytes,
		ChainId:       testChainID,
		AccountNumber: 1234,
	}
	expected, err := signDoc.Marshal()
	require.NoError(t, err)
	assert.Equal(t, expected, signedTx.SignDoc)
}

func TestProvideTx_SignatureVerifies(t *testing.T) {
	f := newFixture(t, 0x01)
	other := newFixture(t, 0x02)
	provider := f.provider(t, testChainID)

	signedTx, err := provider.ProvideTx(context.Background(), f.messages(), f.metadata())
	require.NoError(t, err)

	publicKey := f.keyPair.GetPublicKey()
	assert.True(t, publicKey.VerifySignature(signedTx.SignDoc, signedTx.Signature))
	assert.False(t, other.keyPair.GetPublicKey().VerifySignature(signedTx.SignDoc, signedTx.Signature))

	// Any change to the sign doc, here a different account number, invalidates the signature.
	otherDoc, err := provider.ProvideTx(context.Background(), f.messages(), tx.NewSigningMetadata(f.accountAddress, 1235, 56))
	require.NoError(t, err)
	assert.NotEqual(t, signedTx.SignDoc, otherDoc.SignDoc)
	assert.False(t, publicKey.VerifySignature(otherDoc.SignDoc, signedTx.Signature))
}

func TestProvideTx_DecodesToTransaction(t *testing.T) {
	f := newFixture(t, 0x01)
	provider := f.provider(t, testChainID)

	signedTx, err := provider.ProvideTx(context.Background(), f.messages(), f.metadata())
	require.NoError(t, err)

	decoded, err := f.encodingConfig.TxConfig.TxDecoder()(signedTx.TxBytes)
	require.NoError(t, err)

	msgs := decoded.GetMsgs()
	require.Len(t, msgs, 1)
	msg, ok := msgs[0].(*distributiontypes.MsgWithdrawValidatorCommission)
	require.True(t, ok)
	assert.Equal(t, f.validatorAddress, msg.ValidatorAddress)

	feeTx, ok := decoded.(sdk.FeeTx)
	require.True(t, ok)
	assert.Equal(t, f.fee.Amount, feeTx.GetFee())
	assert.Equal(t, uint64(200000), feeTx.GetGas())

	memoTx, ok := decoded.(sdk.TxWithMemo)
	require.True(t, ok)
	assert.Equal(t, testMemo, memoTx.GetMemo())

	sigTx, ok := decoded.(authsigning.SigVerifiableTx)
	require.True(t, ok)
	signatures, err := sigTx.GetSignaturesV2()
	require.NoError(t, err)
	require.Len(t, signatures, 1)
	assert.Equal(t, uint64(56), signatures[0].Sequence)
	assert.True(t, f.keyPair.GetPublicKey().Equals(signatures[0].PubKey))

	data, ok := signatures[0].Data.(*signing.SingleSignatureData)
	require.True(t, ok)
	assert.Equal(t, signing.SignMode_SIGN_MODE_DIRECT, data.SignMode)
}

func TestProvideTx_TimeoutHeight(t *testing.T) {
	f := newFixture(t, 0x01)
	provider, err := tx.NewTxProvider(f.keyPair, testChainID, f.fee, testMemo, 99, log.Default(), f.encodingConfig.TxConfig)
	require.NoError(t, err)

	signedTx, err := provider.ProvideTx(context.Background(), f.messages(), f.metadata())
	require.NoError(t, err)

	decoded, err := f.encodingConfig.TxConfig.TxDecoder()(signedTx.TxBytes)
	require.NoError(t, err)

	timeoutTx, ok := decoded.(sdk.TxWithTimeoutHeight)
	require.True(t, ok)
	assert.Equal(t, uint64(99), timeoutTx.GetTimeoutHeight())
}

func TestProvideTx_UnresolvableSigner(t *testing.T) {
	f := newFixture(t, 0x01)
	provider := f.provider(t, testChainID)

	// The validator address uses the wrong prefix, so the signer can't be resolved.
	msgs := []sdk.Msg{distributiontypes.NewMsgWithdrawValidatorCommission(f.accountAddress)}
	_, err := provider.ProvideTx(context.Background(), msgs, f.metadata())
	require.ErrorIs(t, err, tx.ErrSignDoc)
}

func TestProvideTx_SignerIsNotTheKey(t *testing.T) {
	f := newFixture(t, 0x01)
	other := newFixture(t, 0x02)
	provider := f.provider(t, testChainID)

	msgs := []sdk.Msg{distributiontypes.NewMsgWithdrawValidatorCommission(other.validatorAddress)}
	_, err := provider.ProvideTx(context.Background(), msgs, f.metadata())
	require.ErrorIs(t, err, tx.ErrSignDoc)
}

func TestNewTxProvider_InvalidChainID(t *testing.T) {
	f := newFixture(t, 0x01)

	_, err := tx.NewTxProvider(f.keyPair, "", f.fee, testMemo, 0, log.Default(), f.encodingConfig.TxConfig)
	require.ErrorIs(t, err, tx.ErrChainIDParse)
}
