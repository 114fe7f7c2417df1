package tx

import (
	"bytes"
	"context"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"

	"github.com/cbrit/withdraw-commission/coding"
	"github.com/cbrit/withdraw-commission/crypto"
	"github.com/cbrit/withdraw-commission/log"
	"github.com/cbrit/withdraw-commission/util"
)

type TxProvider interface {
	ProvideTx(ctx context.Context, messages []sdk.Msg, metadata *SigningMetadata) (*SignedTx, error)
}

// txProvider is the default implementation of the TxProvider interface
type txProvider struct {
	bytesSigner   crypto.BytesSigner
	chainID       string
	fee           FeePolicy
	memo          string
	timeoutHeight uint64

	logger   *log.Logger
	txConfig client.TxConfig
}

// Assert type conformance
var _ TxProvider = (*txProvider)(nil)

func NewTxProvider(
	bytesSigner crypto.BytesSigner,
	chainID string,
	fee FeePolicy,
	memo string,
	timeoutHeight uint64,
	logger *log.Logger,
	txConfig client.TxConfig,
) (TxProvider, error) {
	if err := ValidateChainID(chainID); err != nil {
		return nil, err
	}

	return &txProvider{
		bytesSigner:   bytesSigner,
		chainID:       chainID,
		fee:           fee,
		memo:          memo,
		timeoutHeight: timeoutHeight,

		logger:   logger,
		txConfig: txConfig,
	}, nil
}

// ProvideTx returns the set of messages, encoded with metadata, and includes a valid signature.
func (txp *txProvider) ProvideTx(ctx context.Context, messages []sdk.Msg, metadata *SigningMetadata) (signedTx *SignedTx, err error) {
	// The SDK's builder panics rather than returning errors when the body or auth info fail to marshal.
	defer func() {
		if recovered := recover(); recovered != nil {
			signedTx = nil
			err = errorsmod.Wrap(ErrSignDoc, util.InterfaceToError(recovered).Error())
		}
	}()

	publicKey := txp.bytesSigner.GetPublicKey()

	// Build a transaction
	txb := txp.txConfig.NewTxBuilder()
	if err := txb.SetMsgs(messages...); err != nil {
		return nil, errorsmod.Wrap(ErrSignDoc, err.Error())
	}
	txb.SetMemo(txp.memo)
	txb.SetTimeoutHeight(txp.timeoutHeight)
	txb.SetGasLimit(txp.fee.GasLimit)
	txb.SetFeeAmount(txp.fee.Amount)

	// The builder resolves signers lazily, and a DIRECT sign doc never needs them. Resolve them here so a
	// message naming an address this key can't sign for fails before anything is signed.
	signers, err := txb.GetTx().GetSigners()
	if err != nil {
		return nil, errorsmod.Wrapf(ErrSignDoc, "unable to resolve signers: %s", err)
	}
	if len(signers) != 1 || !bytes.Equal(signers[0], publicKey.Address()) {
		return nil, errorsmod.Wrap(ErrSignDoc, "messages must be signed by exactly the loaded key")
	}

	// An empty signature carries the signer info (public key, mode, sequence) into the auth info.
	signMode := signing.SignMode_SIGN_MODE_DIRECT
	signatureProto := signing.SignatureV2{
		PubKey: publicKey,
		Data: &signing.SingleSignatureData{
			SignMode:  signMode,
			Signature: nil,
		},
		Sequence: metadata.Sequence(),
	}
	if err := txb.SetSignatures(signatureProto); err != nil {
		return nil, errorsmod.Wrap(ErrSignDoc, err.Error())
	}

	// Shim metadata into the format Cosmos SDK wants
	signerData := authsigning.SignerData{
		Address:       metadata.Address(),
		ChainID:       txp.chainID,
		AccountNumber: metadata.AccountNumber(),
		Sequence:      metadata.Sequence(),
		PubKey:        publicKey,
	}

	// Encode to bytes to sign
	signDoc, err := authsigning.GetSignBytesAdapter(ctx, txp.txConfig.SignModeHandler(), signMode, signerData, txb.GetTx())
	if err != nil {
		return nil, errorsmod.Wrap(ErrSignDoc, err.Error())
	}

	// Sign the bytes
	signatureBytes, err := txp.bytesSigner.SignBytes(signDoc)
	if err != nil {
		return nil, errorsmod.Wrap(ErrSigning, err.Error())
	}

	// Reconstruct the signature proto
	signatureProto.Data = &signing.SingleSignatureData{
		SignMode:  signMode,
		Signature: signatureBytes,
	}
	if err := txb.SetSignatures(signatureProto); err != nil {
		return nil, errorsmod.Wrap(ErrSignDoc, err.Error())
	}

	// Encode to bytes
	txBytes, err := txp.txConfig.TxEncoder()(txb.GetTx())
	if err != nil {
		return nil, errorsmod.Wrap(ErrSignDoc, err.Error())
	}

	txp.logger.Debug("signed transaction", "sign_doc", coding.PayloadFingerprint(signDoc), "tx_bytes", coding.PayloadFingerprint(txBytes), "account_number", metadata.AccountNumber(), "sequence", metadata.Sequence())

	return &SignedTx{
		SignDoc:   signDoc,
		Signature: signatureBytes,
		TxBytes:   txBytes,
	}, nil
}
