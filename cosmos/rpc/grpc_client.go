package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	grpcconn "github.com/cbrit/withdraw-commission/grpc"
	"github.com/cbrit/withdraw-commission/log"
)

// GrpcClient queries accounts and submits sync broadcasts over a node's gRPC endpoint.
type GrpcClient struct {
	cdc  *codec.ProtoCodec
	conn *grpc.ClientConn

	authClient authtypes.QueryClient
	txClient   txtypes.ServiceClient

	logger *log.Logger
}

var (
	_ AccountClient = (*GrpcClient)(nil)
)

// NewGrpcClient makes a new GrpcClient. Extra dial options are appended after the transport credentials.
func NewGrpcClient(nodeGrpcUri string, cdc *codec.ProtoCodec, logger *log.Logger, opts ...grpc.DialOption) (*GrpcClient, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(grpc.ForceCodec(cdc.GRPCCodec())))

	conn, err := grpcconn.GetGrpcConnection(nodeGrpcUri, opts...)
	if err != nil {
		logger.Debug("unable to connect to gRPC", "grpc_url", nodeGrpcUri, "error", err.Error())
		return nil, err
	}

	return &GrpcClient{
		cdc:  cdc,
		conn: conn,

		authClient: authtypes.NewQueryClient(conn),
		txClient:   txtypes.NewServiceClient(conn),

		logger: logger,
	}, nil
}

func (r *GrpcClient) Account(ctx context.Context, address string) (sdk.AccountI, error) {
	// Make a query
	query := &authtypes.QueryAccountRequest{Address: address}
	res, err := r.authClient.Account(
		ctx,
		query,
	)
	if err != nil {
		return nil, err
	}
	if res.Account == nil {
		return nil, fmt.Errorf("node returned no account for %s", address)
	}

	// Deserialize response
	var account sdk.AccountI
	if err := r.cdc.UnpackAny(res.Account, &account); err != nil {
		return nil, err
	}
	r.logger.Debug("retrieved account", "address", address, "type_url", res.Account.TypeUrl)

	return account, nil
}

func (r *GrpcClient) AccountInfo(ctx context.Context, address string) (*authtypes.BaseAccount, error) {
	query := &authtypes.QueryAccountInfoRequest{Address: address}
	res, err := r.authClient.AccountInfo(ctx, query)
	if err != nil {
		return nil, err
	}
	if res.Info == nil {
		return nil, fmt.Errorf("node returned no account info for %s", address)
	}

	return res.Info, nil
}

func (r *GrpcClient) BroadcastTxSync(
	ctx context.Context,
	txBytes []byte,
) (*BroadcastResult, error) {
	// Form a query
	query := &txtypes.BroadcastTxRequest{
		Mode:    txtypes.BroadcastMode_BROADCAST_MODE_SYNC,
		TxBytes: txBytes,
	}

	// Send tx
	res, err := r.txClient.BroadcastTx(
		ctx,
		query,
	)
	if err != nil {
		return nil, err
	}
	if res.TxResponse == nil {
		return nil, fmt.Errorf("node returned an empty broadcast response")
	}

	txResponse := res.TxResponse
	return &BroadcastResult{
		TxHash: txResponse.TxHash,
		Height: txResponse.Height,
		CheckTx: ExecutionResult{
			Code:      txResponse.Code,
			Codespace: txResponse.Codespace,
			Log:       txResponse.RawLog,
			GasWanted: txResponse.GasWanted,
			GasUsed:   txResponse.GasUsed,
		},
	}, nil
}

func (r *GrpcClient) Close() error {
	return r.conn.Close()
}
