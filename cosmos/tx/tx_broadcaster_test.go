package tx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbrit/withdraw-commission/cosmos/rpc"
	"github.com/cbrit/withdraw-commission/cosmos/tx"
	"github.com/cbrit/withdraw-commission/log"
)

type fakeBroadcastClient struct {
	result *rpc.BroadcastResult
	err    error

	commitCalls int
	syncCalls   int
}

func (f *fakeBroadcastClient) BroadcastTxCommit(_ context.Context, _ []byte) (*rpc.BroadcastResult, error) {
	f.commitCalls++
	return f.result, f.err
}

func (f *fakeBroadcastClient) BroadcastTxSync(_ context.Context, _ []byte) (*rpc.BroadcastResult, error) {
	f.syncCalls++
	return f.result, f.err
}

func TestBroadcast_Committed(t *testing.T) {
	client := &fakeBroadcastClient{result: &rpc.BroadcastResult{
		TxHash:    "A1B2",
		Height:    1234,
		DeliverTx: &rpc.ExecutionResult{GasWanted: 200000, GasUsed: 98765},
	}}
	broadcaster, err := tx.NewBroadcaster(client, tx.BroadcastModeCommit, log.Default())
	require.NoError(t, err)

	result, err := broadcaster.Broadcast(context.Background(), []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, "A1B2", result.TxHash)
	assert.Equal(t, 1, client.commitCalls)
	assert.Equal(t, 0, client.syncCalls)
}

func TestBroadcast_Sync(t *testing.T) {
	client := &fakeBroadcastClient{result: &rpc.BroadcastResult{TxHash: "A1B2"}}
	broadcaster, err := tx.NewBroadcaster(client, tx.BroadcastModeSync, log.Default())
	require.NoError(t, err)

	_, err = broadcaster.Broadcast(context.Background(), []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, 1, client.syncCalls)
	assert.Equal(t, 0, client.commitCalls)
}

func TestBroadcast_InsufficientFeeIsRejection(t *testing.T) {
	client := &fakeBroadcastClient{result: &rpc.BroadcastResult{
		TxHash: "A1B2",
		CheckTx: rpc.ExecutionResult{
			Code:      13,
			Codespace: "sdk",
			Log:       "insufficient fee",
		},
	}}
	broadcaster, err := tx.NewBroadcaster(client, tx.BroadcastModeCommit, log.Default())
	require.NoError(t, err)

	result, err := broadcaster.Broadcast(context.Background(), []byte{0x01})
	require.ErrorIs(t, err, tx.ErrTxRejected)
	require.NotErrorIs(t, err, tx.ErrBroadcastTransport)
	require.NotNil(t, result)

	var rejection *tx.TxRejectedError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, tx.PhaseCheckTx, rejection.Phase)
	assert.Equal(t, uint32(13), rejection.Code)
	assert.Equal(t, "sdk", rejection.Codespace)
	assert.Equal(t, "insufficient fee", rejection.Log)
	assert.Equal(t, "A1B2", rejection.TxHash)
}

func TestBroadcast_DeliverTxRejection(t *testing.T) {
	client := &fakeBroadcastClient{result: &rpc.BroadcastResult{
		TxHash:    "A1B2",
		Height:    1234,
		DeliverTx: &rpc.ExecutionResult{Code: 11, Codespace: "sdk", Log: "out of gas"},
	}}
	broadcaster, err := tx.NewBroadcaster(client, tx.BroadcastModeCommit, log.Default())
	require.NoError(t, err)

	_, err = broadcaster.Broadcast(context.Background(), []byte{0x01})

	var rejection *tx.TxRejectedError
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, tx.PhaseDeliverTx, rejection.Phase)
	assert.Equal(t, "out of gas", rejection.Log)
}

func TestBroadcast_TransportFailure(t *testing.T) {
	client := &fakeBroadcastClient{err: errors.New("dial tcp: connection refused")}
	broadcaster, err := tx.NewBroadcaster(client, tx.BroadcastModeCommit, log.Default())
	require.NoError(t, err)

	result, err := broadcaster.Broadcast(context.Background(), []byte{0x01})
	require.ErrorIs(t, err, tx.ErrBroadcastTransport)
	require.NotErrorIs(t, err, tx.ErrTxRejected)
	assert.Nil(t, result)
}

func TestNewBroadcaster_UnknownMode(t *testing.T) {
	_, err := tx.NewBroadcaster(&fakeBroadcastClient{}, tx.BroadcastMode("async"), log.Default())
	require.Error(t, err)
}

func TestNewBroadcaster_ModeIsCaseInsensitive(t *testing.T) {
	client := &fakeBroadcastClient{result: &rpc.BroadcastResult{TxHash: "A1B2"}}
	broadcaster, err := tx.NewBroadcaster(client, tx.BroadcastMode(" SYNC "), log.Default())
	require.NoError(t, err)

	_, err = broadcaster.Broadcast(context.Background(), []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, 1, client.syncCalls)
	assert.Equal(t, 0, client.commitCalls)
}
