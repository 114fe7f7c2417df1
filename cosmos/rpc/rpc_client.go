package rpc

import (
	"context"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/cbrit/withdraw-commission/log"
)

// AccountClient resolves on-chain account metadata.
type AccountClient interface {
	// Account calls cosmos.auth.v1beta1.Query/Account and unpacks the returned Any.
	Account(ctx context.Context, address string) (sdk.AccountI, error)

	// AccountInfo calls cosmos.auth.v1beta1.Query/AccountInfo, which answers with base account fields directly.
	AccountInfo(ctx context.Context, address string) (*authtypes.BaseAccount, error)
}

// BroadcastClient submits signed transactions.
type BroadcastClient interface {
	// BroadcastTxCommit waits for the transaction to be included in a block.
	BroadcastTxCommit(ctx context.Context, txBytes []byte) (*BroadcastResult, error)

	// BroadcastTxSync returns once the transaction passed or failed CheckTx.
	BroadcastTxSync(ctx context.Context, txBytes []byte) (*BroadcastResult, error)
}

// Handles RPCs for withdrawing commission
type RpcClient interface {
	AccountClient
	BroadcastClient

	Close() error
}

type rpcClient struct {
	*GrpcClient
	*CometClient
}

var _ RpcClient = (*rpcClient)(nil)

// NewRpcClient combines a gRPC client for queries and sync broadcasts with a CometBFT client for commit broadcasts.
func NewRpcClient(grpcUri, rpcUri string, cdc *codec.ProtoCodec, logger *log.Logger) (RpcClient, error) {
	grpcClient, err := NewGrpcClient(grpcUri, cdc, logger)
	if err != nil {
		return nil, err
	}

	cometClient, err := NewCometClient(rpcUri, logger)
	if err != nil {
		_ = grpcClient.Close()
		return nil, err
	}

	return &rpcClient{
		GrpcClient:  grpcClient,
		CometClient: cometClient,
	}, nil
}
