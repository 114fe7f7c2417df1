package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cbrit/withdraw-commission/chains"
	"github.com/cbrit/withdraw-commission/config"
	"github.com/cbrit/withdraw-commission/cosmos"
	"github.com/cbrit/withdraw-commission/cosmos/rpc"
	"github.com/cbrit/withdraw-commission/log"
	"github.com/cbrit/withdraw-commission/metrics"
	"github.com/cbrit/withdraw-commission/withdraw"
)

const (
	pushgatewayJob = "withdraw_commission"
	pushTimeout    = 10 * time.Second
)

// Execute runs the CLI and returns the process exit code.
func Execute(args []string) int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	// Errors from the pipeline are already logged, everything else (flag parsing, config) is printed here.
	var stageErr *withdraw.StageError
	if err != nil && !errors.As(err, &stageErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return CodeForError(err)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "withdraw-commission",
		Short:         "Withdraw a validator's commission",
		Long:          "Sign and broadcast a MsgWithdrawValidatorCommission for the validator operated by the given key.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, stdout, stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	config.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().String(config.FlagConfig, "", "Path to a YAML configuration file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func run(cmd *cobra.Command, stdout, stderr io.Writer) error {
	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return err
	}
	cfg, err := config.Load(v, chains.NewOfflineChainRegistry())
	if err != nil {
		return err
	}

	logger := log.NewLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	logger.Debug("loaded configuration", "config", cfg.String())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	encodingConfig, err := cosmos.MakeEncodingConfig(cfg.AccountPrefix, cfg.ValidatorPrefix)
	if err != nil {
		return err
	}

	rpcClient, err := rpc.NewRpcClient(cfg.GrpcURL, cfg.RpcURL, encodingConfig.Codec, logger.ApplyPrefix("[rpc]"))
	if err != nil {
		return err
	}
	defer func() {
		if err := rpcClient.Close(); err != nil {
			logger.Debug("failed to close gRPC connection", "error", err.Error())
		}
	}()

	recorder := metrics.NewRecorder(cfg.ChainID)
	pipeline := withdraw.NewPipeline(cfg, rpcClient, encodingConfig, logger, recorder)
	result, runErr := pipeline.Run(ctx)

	if cfg.PushgatewayURL != "" {
		// Push even when the run failed. Use a fresh context so a run that hit its deadline still reports.
		pushCtx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		if err := recorder.Push(pushCtx, cfg.PushgatewayURL, pushgatewayJob); err != nil {
			logger.Warn("failed to push metrics", "pushgateway_url", cfg.PushgatewayURL, "error", err.Error())
		}
	}

	if runErr != nil {
		return runErr
	}

	if cfg.DryRun {
		fmt.Fprintln(stdout, hex.EncodeToString(result.TxBytes))
		return nil
	}
	fmt.Fprintln(stdout, result.TxHash)
	return nil
}
