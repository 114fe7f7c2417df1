package cosmos

import (
	"fmt"

	txsigning "cosmossdk.io/x/tx/signing"
	"github.com/cosmos/gogoproto/proto"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/std"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authcodec "github.com/cosmos/cosmos-sdk/x/auth/codec"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	vestingtypes "github.com/cosmos/cosmos-sdk/x/auth/vesting/types"
	distributiontypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
)

// EncodingConfig bundles everything needed to encode, decode and sign transactions for a single chain.
type EncodingConfig struct {
	InterfaceRegistry codectypes.InterfaceRegistry
	Codec             *codec.ProtoCodec
	TxConfig          client.TxConfig
}

// MakeEncodingConfig builds an encoding config for a chain with the given bech32 prefixes.
//
// Only SIGN_MODE_DIRECT is enabled. The registry knows about the base account types (including vesting
// and module accounts) and the distribution messages.
func MakeEncodingConfig(accountPrefix, validatorPrefix string) (*EncodingConfig, error) {
	if accountPrefix == "" || validatorPrefix == "" {
		return nil, fmt.Errorf("bech32 prefixes must be set (account: %q, validator: %q)", accountPrefix, validatorPrefix)
	}

	signingOptions := txsigning.Options{
		AddressCodec:          authcodec.NewBech32Codec(accountPrefix),
		ValidatorAddressCodec: authcodec.NewBech32Codec(validatorPrefix),
	}

	interfaceRegistry, err := codectypes.NewInterfaceRegistryWithOptions(codectypes.InterfaceRegistryOptions{
		ProtoFiles:     proto.HybridResolver,
		SigningOptions: signingOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create interface registry: %w", err)
	}

	std.RegisterInterfaces(interfaceRegistry)
	authtypes.RegisterInterfaces(interfaceRegistry)
	vestingtypes.RegisterInterfaces(interfaceRegistry)
	distributiontypes.RegisterInterfaces(interfaceRegistry)

	protoCodec := codec.NewProtoCodec(interfaceRegistry)

	txConfig, err := authtx.NewTxConfigWithOptions(protoCodec, authtx.ConfigOptions{
		EnabledSignModes: []signing.SignMode{signing.SignMode_SIGN_MODE_DIRECT},
		SigningOptions:   &signingOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tx config: %w", err)
	}

	return &EncodingConfig{
		InterfaceRegistry: interfaceRegistry,
		Codec:             protoCodec,
		TxConfig:          txConfig,
	}, nil
}
