package tx

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

const codespace = "txpipeline"

var (
	ErrAccountQuery       = errorsmod.Register(codespace, 2, "failed to query account")
	ErrChainIDParse       = errorsmod.Register(codespace, 3, "invalid chain id")
	ErrSignDoc            = errorsmod.Register(codespace, 4, "failed to build sign doc")
	ErrSigning            = errorsmod.Register(codespace, 5, "failed to sign transaction")
	ErrBroadcastTransport = errorsmod.Register(codespace, 6, "failed to broadcast transaction")
	ErrTxRejected         = errorsmod.Register(codespace, 7, "transaction rejected")
)

// Phases in which a node can reject a transaction.
const (
	PhaseCheckTx   = "CheckTx"
	PhaseDeliverTx = "DeliverTx"
)

// TxRejectedError is returned when a broadcast reached the node but the transaction failed.
type TxRejectedError struct {
	Phase     string
	Code      uint32
	Codespace string
	Log       string
	TxHash    string
}

func (e *TxRejectedError) Error() string {
	return fmt.Sprintf("transaction %s rejected in %s (codespace: %q, code: %d): %s", e.TxHash, e.Phase, e.Codespace, e.Code, e.Log)
}

func (e *TxRejectedError) Unwrap() error {
	return ErrTxRejected
}
