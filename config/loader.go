package config

import (
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cbrit/withdraw-commission/chains"
	"github.com/cbrit/withdraw-commission/cosmos/tx"
	"github.com/cbrit/withdraw-commission/crypto"
	"github.com/cbrit/withdraw-commission/log"
)

const EnvPrefix = "WITHDRAW_COMMISSION"

// NewViper layers, from lowest to highest precedence, flag defaults, the config file, environment variables and
// explicitly set flags.
func NewViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, errorsmod.Wrap(ErrInvalidConfig, err.Error())
	}

	configFile := v.GetString(FlagConfig)
	if configFile == "" {
		return v, nil
	}

	resolved, err := ResolveConfigFile(configFile)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidConfig, err.Error())
	}
	v.SetConfigFile(resolved)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidConfig, "failed to read config file %s: %s", resolved, err)
	}

	return v, nil
}

// Load reads the configuration out of viper, fills in chain specific defaults from the registry and validates the result.
func Load(v *viper.Viper, registry *chains.OfflineChainRegistry) (*Config, error) {
	cfg := &Config{
		ChainID:        strings.TrimSpace(v.GetString(FlagChainID)),
		SigningKeyPath: ExpandHomeDir(strings.TrimSpace(v.GetString(FlagSigningKeyPath))),
		KeyFormat:      crypto.KeyFormat(strings.ToLower(strings.TrimSpace(v.GetString(FlagKeyFormat)))),
		CoinType:       v.GetUint32(FlagCoinType),

		RpcURL:  strings.TrimSpace(v.GetString(FlagRpcURL)),
		GrpcURL: strings.TrimSpace(v.GetString(FlagGrpcURL)),

		AccountPrefix:   strings.TrimSpace(v.GetString(FlagAccountPrefix)),
		ValidatorPrefix: strings.TrimSpace(v.GetString(FlagValidatorPrefix)),

		Denom:         strings.TrimSpace(v.GetString(FlagDenom)),
		FeeAmount:     strings.TrimSpace(v.GetString(FlagFeeAmount)),
		GasLimit:      v.GetUint64(FlagGasLimit),
		Memo:          v.GetString(FlagMemo),
		TimeoutHeight: v.GetUint64(FlagTimeoutHeight),

		AccountQuery:  tx.AccountQueryMode(strings.ToLower(strings.TrimSpace(v.GetString(FlagAccountQuery)))),
		BroadcastMode: tx.BroadcastMode(strings.ToLower(strings.TrimSpace(v.GetString(FlagBroadcastMode)))),
		DryRun:        v.GetBool(FlagDryRun),
		Timeout:       v.GetDuration(FlagTimeout),

		LogLevel:       v.GetString(FlagLogLevel),
		LogFormat:      log.Format(strings.ToLower(strings.TrimSpace(v.GetString(FlagLogFormat)))),
		PushgatewayURL: strings.TrimSpace(v.GetString(FlagPushgatewayURL)),
	}

	// A malformed chain ID is reported as such, not as a chain missing from the registry.
	if err := tx.ValidateChainID(cfg.ChainID); err != nil {
		return nil, err
	}
	if err := cfg.resolveChainDefaults(registry); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolveChainDefaults(registry *chains.OfflineChainRegistry) error {
	if c.AccountPrefix == "" || c.Denom == "" {
		chainData, found := registry.ChainForChainID(c.ChainID)
		if !found {
			return errorsmod.Wrapf(ErrInvalidConfig, "chain %q is not in the registry, set --%s and --%s", c.ChainID, FlagAccountPrefix, FlagDenom)
		}

		if c.AccountPrefix == "" {
			c.AccountPrefix = chainData.AccountPrefix
		}
		if c.Denom == "" {
			c.Denom = chainData.NativeToken
		}
	}

	if c.ValidatorPrefix == "" {
		c.ValidatorPrefix = chains.ValidatorPrefixForAccountPrefix(c.AccountPrefix)
	}
	return nil
}
