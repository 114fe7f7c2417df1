package tx

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	"github.com/cbrit/withdraw-commission/cosmos/rpc"
	"github.com/cbrit/withdraw-commission/log"
)

// Broadcaster submits a signed transaction once and classifies the outcome.
type Broadcaster struct {
	client rpc.BroadcastClient
	mode   BroadcastMode

	logger *log.Logger
}

func NewBroadcaster(client rpc.BroadcastClient, mode BroadcastMode, logger *log.Logger) (*Broadcaster, error) {
	parsedMode, err := ParseBroadcastMode(string(mode))
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		client: client,
		mode:   parsedMode,
		logger: logger,
	}, nil
}

// Broadcast sends the transaction. Transport failures return ErrBroadcastTransport and no result. If the node
// answered but rejected the transaction, the result is returned along with a *TxRejectedError.
func (b *Broadcaster) Broadcast(ctx context.Context, txBytes []byte) (*rpc.BroadcastResult, error) {
	var (
		result *rpc.BroadcastResult
		err    error
	)
	switch b.mode {
	case BroadcastModeSync:
		result, err = b.client.BroadcastTxSync(ctx, txBytes)
	default:
		result, err = b.client.BroadcastTxCommit(ctx, txBytes)
	}
	if err != nil {
		b.logger.Debug("failed to broadcast transaction", "broadcast_mode", b.mode, "error", err.Error())
		return nil, errorsmod.Wrap(ErrBroadcastTransport, err.Error())
	}

	logger := b.logger.With("tx_hash", result.TxHash, "broadcast_mode", b.mode)
	logger.Info("📣 broadcasted transaction", "height", result.Height, "code", result.CheckTx.Code, "codespace", result.CheckTx.Codespace)

	if !result.CheckTx.IsOK() {
		logger.Debug("transaction failed CheckTx", "code", result.CheckTx.Code, "codespace", result.CheckTx.Codespace, "logs", result.CheckTx.Log)
		return result, &TxRejectedError{
			Phase:     PhaseCheckTx,
			Code:      result.CheckTx.Code,
			Codespace: result.CheckTx.Codespace,
			Log:       result.CheckTx.Log,
			TxHash:    result.TxHash,
		}
	}

	if result.DeliverTx != nil && !result.DeliverTx.IsOK() {
		logger.Debug("transaction landed on chain but failed", "code", result.DeliverTx.Code, "codespace", result.DeliverTx.Codespace, "logs", result.DeliverTx.Log)
		return result, &TxRejectedError{
			Phase:     PhaseDeliverTx,
			Code:      result.DeliverTx.Code,
			Codespace: result.DeliverTx.Codespace,
			Log:       result.DeliverTx.Log,
			TxHash:    result.TxHash,
		}
	}

	if result.DeliverTx != nil {
		logger.Info("transaction sent and landed on chain, successfully", "gas_wanted", result.DeliverTx.GasWanted, "gas_used", result.DeliverTx.GasUsed)
	}
	return result, nil
}
