package rpc

import "fmt"

// ExecutionResult is the outcome of one ABCI phase (CheckTx or DeliverTx).
type ExecutionResult struct {
	Code      uint32
	Codespace string
	Log       string
	GasWanted int64
	GasUsed   int64
}

func (er ExecutionResult) IsOK() bool {
	return er.Code == 0
}

// BroadcastResult is the node's answer to a broadcast that reached it.
type BroadcastResult struct {
	TxHash string
	Height int64

	CheckTx ExecutionResult

	// DeliverTx is nil if the transaction was never executed in a block, either because CheckTx
	// failed or because the broadcast did not wait for inclusion.
	DeliverTx *ExecutionResult
}

func (br *BroadcastResult) String() string {
	if br == nil {
		return "<nil>"
	}
	if br.DeliverTx == nil {
		return fmt.Sprintf("hash=%s check_tx_code=%d", br.TxHash, br.CheckTx.Code)
	}
	return fmt.Sprintf("hash=%s height=%d check_tx_code=%d deliver_tx_code=%d", br.TxHash, br.Height, br.CheckTx.Code, br.DeliverTx.Code)
}
