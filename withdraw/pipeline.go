package withdraw

import (
	"context"
	"errors"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cbrit/withdraw-commission/coding"
	"github.com/cbrit/withdraw-commission/config"
	"github.com/cbrit/withdraw-commission/cosmos"
	"github.com/cbrit/withdraw-commission/cosmos/rpc"
	"github.com/cbrit/withdraw-commission/cosmos/tx"
	"github.com/cbrit/withdraw-commission/crypto"
	"github.com/cbrit/withdraw-commission/log"
	"github.com/cbrit/withdraw-commission/metrics"
)

// Result describes a completed, or partially completed, run.
type Result struct {
	AccountAddress   string
	ValidatorAddress string

	AccountNumber uint64
	Sequence      uint64

	TxHash  string
	Height  int64
	TxBytes []byte

	// Broadcast is nil on dry runs and when the broadcast never reached a node.
	Broadcast *rpc.BroadcastResult
}

// Pipeline withdraws a validator's commission: load key, build message, resolve account, sign, broadcast.
type Pipeline struct {
	cfg            *config.Config
	rpcClient      rpc.RpcClient
	encodingConfig *cosmos.EncodingConfig

	logger   *log.Logger
	recorder *metrics.Recorder
}

func NewPipeline(cfg *config.Config, rpcClient rpc.RpcClient, encodingConfig *cosmos.EncodingConfig, logger *log.Logger, recorder *metrics.Recorder) *Pipeline {
	return &Pipeline{
		cfg:            cfg,
		rpcClient:      rpcClient,
		encodingConfig: encodingConfig,

		logger:   logger,
		recorder: recorder,
	}
}

// Run executes each stage in order. The first failure stops the run and is returned as a *StageError.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	result, err := p.run(ctx)

	switch {
	case err == nil && p.cfg.DryRun:
		p.recorder.RecordOutcome(metrics.OutcomeDryRun)
	case err == nil:
		p.recorder.RecordOutcome(metrics.OutcomeSuccess)
	case errors.Is(err, tx.ErrTxRejected):
		p.recorder.RecordOutcome(metrics.OutcomeRejected)
	default:
		p.recorder.RecordOutcome(metrics.OutcomeFailed)
	}

	return result, err
}

func (p *Pipeline) run(ctx context.Context) (*Result, error) {
	result := &Result{}

	// Key material
	var keyPair *crypto.KeyPair
	err := p.runStage(StageLoadKey, func() error {
		var err error
		keyPair, err = crypto.LoadKeyPair(p.cfg.SigningKeyPath, p.cfg.KeyFormat, p.cfg.CoinType)
		if err != nil {
			return err
		}

		result.AccountAddress, err = keyPair.GetAddress(p.cfg.AccountPrefix)
		if err != nil {
			return err
		}
		result.ValidatorAddress, err = keyPair.GetAddress(p.cfg.ValidatorPrefix)
		if err != nil {
			return err
		}

		p.logger.ApplyPrefix("🔑").Info("loaded signing key", "account_address", result.AccountAddress, "validator_address", result.ValidatorAddress)
		return nil
	})
	if err != nil {
		return result, err
	}

	// Message
	var msgs []sdk.Msg
	err = p.runStage(StageBuildMessage, func() error {
		msg, err := NewWithdrawCommissionMsg(result.ValidatorAddress, p.cfg.ValidatorPrefix)
		if err != nil {
			return err
		}
		packed, err := PackMsg(msg)
		if err != nil {
			return err
		}

		p.logger.ApplyPrefix("✉️").Debug("built message", "type_url", packed.TypeUrl, "validator_address", msg.ValidatorAddress)
		msgs = []sdk.Msg{msg}
		return nil
	})
	if err != nil {
		return result, err
	}

	// Account number and sequence
	var metadata *tx.SigningMetadata
	err = p.runStage(StageResolveAccount, func() error {
		provider, err := tx.NewSigningMetadataProvider(p.rpcClient, p.cfg.AccountQuery, p.logger.ApplyPrefix("🔎"))
		if err != nil {
			return err
		}
		metadata, err = provider.SigningMetadataForAccount(ctx, result.AccountAddress)
		if err != nil {
			return err
		}

		result.AccountNumber = metadata.AccountNumber()
		result.Sequence = metadata.Sequence()
		p.logger.ApplyPrefix("🔎").Info("resolved account", "address", metadata.Address(), "account_number", metadata.AccountNumber(), "sequence", metadata.Sequence())
		return nil
	})
	if err != nil {
		return result, err
	}

	// Sign
	var signedTx *tx.SignedTx
	err = p.runStage(StageSign, func() error {
		fee, err := p.cfg.FeePolicy()
		if err != nil {
			return err
		}

		txProvider, err := tx.NewTxProvider(keyPair, p.cfg.ChainID, fee, p.cfg.Memo, p.cfg.TimeoutHeight, p.logger.ApplyPrefix("✍️"), p.encodingConfig.TxConfig)
		if err != nil {
			return err
		}
		signedTx, err = txProvider.ProvideTx(ctx, msgs, metadata)
		if err != nil {
			return err
		}

		result.TxBytes = signedTx.TxBytes
		p.logger.ApplyPrefix("✍️").Info("signed transaction", "tx", coding.PayloadFingerprint(signedTx.TxBytes), "size", len(signedTx.TxBytes), "fee", fee.Amount.String(), "gas_limit", fee.GasLimit)
		return nil
	})
	if err != nil {
		return result, err
	}

	if p.cfg.DryRun {
		p.logger.Info("dry run, skipping broadcast")
		return result, nil
	}

	// Broadcast
	err = p.runStage(StageBroadcast, func() error {
		broadcaster, err := tx.NewBroadcaster(p.rpcClient, p.cfg.BroadcastMode, p.logger.ApplyPrefix("📣"))
		if err != nil {
			return err
		}

		broadcastResult, err := broadcaster.Broadcast(ctx, signedTx.TxBytes)
		if broadcastResult != nil {
			result.Broadcast = broadcastResult
			result.TxHash = broadcastResult.TxHash
			result.Height = broadcastResult.Height
		}
		return err
	})
	if err != nil {
		return result, err
	}

	p.logger.Info("🎉 withdrew validator commission", "tx_hash", result.TxHash, "height", result.Height, "validator_address", result.ValidatorAddress)
	return result, nil
}

// runStage times the stage, records it and wraps any failure with the stage name.
func (p *Pipeline) runStage(stage Stage, fn func() error) error {
	start := time.Now()
	err := fn()
	p.recorder.ObserveStage(string(stage), time.Since(start), err)

	if err != nil {
		p.logger.Error("stage failed", "stage", stage, "error", err.Error())
		return &StageError{Stage: stage, Err: err}
	}
	return nil
}
