package config

import (
	"fmt"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/spf13/pflag"

	"github.com/cbrit/withdraw-commission/cosmos/tx"
	"github.com/cbrit/withdraw-commission/crypto"
	"github.com/cbrit/withdraw-commission/log"
)

// Flag names. Each flag is also read from WITHDRAW_COMMISSION_<NAME> and from the config file under the same key.
const (
	FlagChainID         = "chain-id"
	FlagSigningKeyPath  = "signing-key-path"
	FlagKeyFormat       = "key-format"
	FlagCoinType        = "coin-type"
	FlagRpcURL          = "rpc-url"
	FlagGrpcURL         = "grpc-url"
	FlagAccountPrefix   = "account-prefix"
	FlagValidatorPrefix = "validator-prefix"
	FlagDenom           = "denom"
	FlagFeeAmount       = "fee-amount"
	FlagGasLimit        = "gas-limit"
	FlagMemo            = "memo"
	FlagTimeoutHeight   = "timeout-height"
	FlagAccountQuery    = "account-query"
	FlagBroadcastMode   = "broadcast-mode"
	FlagDryRun          = "dry-run"
	FlagTimeout         = "timeout"
	FlagLogLevel        = "log-level"
	FlagLogFormat       = "log-format"
	FlagPushgatewayURL  = "pushgateway-url"

	// FlagConfig points at a YAML config file. It is not itself part of the file.
	FlagConfig = "config"
)

// Config is the resolved configuration of a single run.
type Config struct {
	ChainID        string           `yaml:"chain-id" comment:"Chain ID embedded in the sign doc"`
	SigningKeyPath string           `yaml:"signing-key-path" comment:"Path to the validator operator's key file"`
	KeyFormat      crypto.KeyFormat `yaml:"key-format" comment:"Key file format: hex (32 byte private key) or mnemonic"`
	CoinType       uint32           `yaml:"coin-type" comment:"SLIP-44 coin type used to derive mnemonic keys"`

	RpcURL  string `yaml:"rpc-url" comment:"CometBFT RPC endpoint, used for commit broadcasts"`
	GrpcURL string `yaml:"grpc-url" comment:"gRPC endpoint, used for account queries and sync broadcasts"`

	AccountPrefix   string `yaml:"account-prefix" comment:"Bech32 account prefix. Empty resolves it from the chain ID"`
	ValidatorPrefix string `yaml:"validator-prefix" comment:"Bech32 validator operator prefix. Empty uses <account-prefix>valoper"`

	Denom         string `yaml:"denom" comment:"Fee denom. Empty uses the chain's native token"`
	FeeAmount     string `yaml:"fee-amount" comment:"Fee amount, in base units of the fee denom"`
	GasLimit      uint64 `yaml:"gas-limit" comment:"Gas limit. Gas is never simulated"`
	Memo          string `yaml:"memo" comment:"Transaction memo"`
	TimeoutHeight uint64 `yaml:"timeout-height" comment:"Block height after which the transaction is invalid. 0 disables"`

	AccountQuery  tx.AccountQueryMode `yaml:"account-query" comment:"Account query: auto, account or account-info"`
	BroadcastMode tx.BroadcastMode    `yaml:"broadcast-mode" comment:"Broadcast mode: commit (wait for a block) or sync (CheckTx only)"`
	DryRun        bool                `yaml:"dry-run" comment:"Sign the transaction and print it without broadcasting"`
	Timeout       time.Duration       `yaml:"timeout" comment:"Deadline for the whole run, ex. 30s. 0s disables"`

	LogLevel       string     `yaml:"log-level" comment:"Log level: debug, info, warn or error"`
	LogFormat      log.Format `yaml:"log-format" comment:"Log format: text or json"`
	PushgatewayURL string     `yaml:"pushgateway-url" comment:"Prometheus Pushgateway to push run metrics to. Empty disables"`
}

func Default() *Config {
	return &Config{
		ChainID:   "sommelier-3",
		KeyFormat: crypto.KeyFormatHex,
		CoinType:  crypto.CosmosCoinType,

		RpcURL:  "https://sommelier-rpc.polkachu.com:443",
		GrpcURL: "https://sommelier-grpc.polkachu.com:14190",

		FeeAmount: "1000",
		GasLimit:  200000,
		Memo:      "Withdraw validator commission",

		AccountQuery:  tx.AccountQueryAuto,
		BroadcastMode: tx.BroadcastModeCommit,

		LogLevel:  "info",
		LogFormat: log.FormatText,
	}
}

// RegisterFlags adds one flag per config key, defaulting to Default().
func RegisterFlags(flags *pflag.FlagSet) {
	defaults := Default()

	flags.String(FlagChainID, defaults.ChainID, "Chain ID embedded in the sign doc")
	flags.String(FlagSigningKeyPath, defaults.SigningKeyPath, "Path to the validator operator's key file (required)")
	flags.String(FlagKeyFormat, string(defaults.KeyFormat), "Key file format: hex|mnemonic")
	flags.Uint32(FlagCoinType, defaults.CoinType, "SLIP-44 coin type used to derive mnemonic keys")
	flags.String(FlagRpcURL, defaults.RpcURL, "CometBFT RPC endpoint")
	flags.String(FlagGrpcURL, defaults.GrpcURL, "gRPC endpoint")
	flags.String(FlagAccountPrefix, defaults.AccountPrefix, "Bech32 account prefix (default: resolved from the chain ID)")
	flags.String(FlagValidatorPrefix, defaults.ValidatorPrefix, "Bech32 validator operator prefix (default: <account-prefix>valoper)")
	flags.String(FlagDenom, defaults.Denom, "Fee denom (default: the chain's native token)")
	flags.String(FlagFeeAmount, defaults.FeeAmount, "Fee amount in base units")
	flags.Uint64(FlagGasLimit, defaults.GasLimit, "Gas limit")
	flags.String(FlagMemo, defaults.Memo, "Transaction memo")
	flags.Uint64(FlagTimeoutHeight, defaults.TimeoutHeight, "Timeout height, 0 disables")
	flags.String(FlagAccountQuery, string(defaults.AccountQuery), "Account query: auto|account|account-info")
	flags.String(FlagBroadcastMode, string(defaults.BroadcastMode), "Broadcast mode: commit|sync")
	flags.Bool(FlagDryRun, defaults.DryRun, "Sign and print the transaction without broadcasting")
	flags.Duration(FlagTimeout, defaults.Timeout, "Deadline for the whole run, 0 disables")
	flags.String(FlagLogLevel, defaults.LogLevel, "Log level: debug|info|warn|error")
	flags.String(FlagLogFormat, string(defaults.LogFormat), "Log format: text|json")
	flags.String(FlagPushgatewayURL, defaults.PushgatewayURL, "Prometheus Pushgateway URL, empty disables pushing metrics")
}

// FeePolicy parses the fee settings.
func (c *Config) FeePolicy() (tx.FeePolicy, error) {
	amount, ok := math.NewIntFromString(c.FeeAmount)
	if !ok {
		return tx.FeePolicy{}, errorsmod.Wrapf(ErrInvalidConfig, "fee amount %q is not an integer", c.FeeAmount)
	}

	fee, err := tx.NewFeePolicy(c.Denom, amount, c.GasLimit)
	if err != nil {
		return tx.FeePolicy{}, errorsmod.Wrap(ErrInvalidConfig, err.Error())
	}
	return fee, nil
}

// Validate rejects configurations which can't produce a transaction. No network access is needed.
func (c *Config) Validate() error {
	if err := tx.ValidateChainID(c.ChainID); err != nil {
		return err
	}

	if c.SigningKeyPath == "" {
		return errorsmod.Wrapf(ErrInvalidConfig, "--%s is required", FlagSigningKeyPath)
	}
	if _, err := crypto.ParseKeyFormat(string(c.KeyFormat)); err != nil {
		return errorsmod.Wrap(ErrInvalidConfig, err.Error())
	}

	if c.AccountPrefix == "" || c.ValidatorPrefix == "" {
		return errorsmod.Wrapf(ErrInvalidConfig, "bech32 prefixes are not set (account: %q, validator: %q)", c.AccountPrefix, c.ValidatorPrefix)
	}
	if c.AccountPrefix == c.ValidatorPrefix {
		return errorsmod.Wrapf(ErrInvalidConfig, "account and validator prefixes must differ, both are %q", c.AccountPrefix)
	}

	if _, err := c.FeePolicy(); err != nil {
		return err
	}

	if _, err := tx.ParseAccountQueryMode(string(c.AccountQuery)); err != nil {
		return errorsmod.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err := tx.ParseBroadcastMode(string(c.BroadcastMode)); err != nil {
		return errorsmod.Wrap(ErrInvalidConfig, err.Error())
	}

	if c.GrpcURL == "" {
		return errorsmod.Wrapf(ErrInvalidConfig, "--%s is required", FlagGrpcURL)
	}
	if c.RpcURL == "" && c.BroadcastMode == tx.BroadcastModeCommit && !c.DryRun {
		return errorsmod.Wrapf(ErrInvalidConfig, "--%s is required to broadcast in commit mode", FlagRpcURL)
	}

	if c.Timeout < 0 {
		return errorsmod.Wrapf(ErrInvalidConfig, "timeout must not be negative, got %s", c.Timeout)
	}
	if _, err := log.ParseFormat(string(c.LogFormat)); err != nil {
		return errorsmod.Wrap(ErrInvalidConfig, err.Error())
	}

	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("chain_id=%s key=%s rpc=%s grpc=%s broadcast_mode=%s dry_run=%t", c.ChainID, c.SigningKeyPath, c.RpcURL, c.GrpcURL, c.BroadcastMode, c.DryRun)
}
