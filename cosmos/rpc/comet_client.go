package rpc

import (
	"context"
	"fmt"

	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	cmttypes "github.com/cometbft/cometbft/types"

	"github.com/cbrit/withdraw-commission/log"
)

// TxCommitter is the slice of the CometBFT RPC client used to broadcast with commit semantics.
type TxCommitter interface {
	BroadcastTxCommit(ctx context.Context, tx cmttypes.Tx) (*coretypes.ResultBroadcastTxCommit, error)
}

// CometClient broadcasts over a node's CometBFT RPC endpoint.
type CometClient struct {
	committer TxCommitter
	logger    *log.Logger
}

// NewCometClient creates an HTTP client for the given CometBFT RPC uri.
func NewCometClient(rpcUri string, logger *log.Logger) (*CometClient, error) {
	httpClient, err := rpchttp.New(rpcUri, "/websocket")
	if err != nil {
		logger.Debug("unable to create CometBFT client", "rpc_url", rpcUri, "error", err.Error())
		return nil, err
	}

	return NewCometClientWithCommitter(httpClient, logger), nil
}

func NewCometClientWithCommitter(committer TxCommitter, logger *log.Logger) *CometClient {
	return &CometClient{
		committer: committer,
		logger:    logger,
	}
}

func (c *CometClient) BroadcastTxCommit(ctx context.Context, txBytes []byte) (*BroadcastResult, error) {
	res, err := c.committer.BroadcastTxCommit(ctx, cmttypes.Tx(txBytes))
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("node returned an empty broadcast response")
	}

	result := &BroadcastResult{
		TxHash: res.Hash.String(),
		Height: res.Height,
		CheckTx: ExecutionResult{
			Code:      res.CheckTx.Code,
			Codespace: res.CheckTx.Codespace,
			Log:       res.CheckTx.Log,
			GasWanted: res.CheckTx.GasWanted,
			GasUsed:   res.CheckTx.GasUsed,
		},
	}

	// A failed CheckTx means the transaction never reached a block.
	if res.CheckTx.IsOK() {
		result.DeliverTx = &ExecutionResult{
			Code:      res.TxResult.Code,
			Codespace: res.TxResult.Codespace,
			Log:       res.TxResult.Log,
			GasWanted: res.TxResult.GasWanted,
			GasUsed:   res.TxResult.GasUsed,
		}
	}
	c.logger.Debug("broadcast committed", "result", result.String())

	return result, nil
}
