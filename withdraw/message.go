package withdraw

import (
	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	distributiontypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
)

// NewWithdrawCommissionMsg builds a commission withdrawal for the validator operator address, which must carry the
// validator prefix.
func NewWithdrawCommissionMsg(validatorAddress, validatorPrefix string) (*distributiontypes.MsgWithdrawValidatorCommission, error) {
	hrp, _, err := bech32.DecodeAndConvert(validatorAddress)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrMessageEncoding, "invalid validator address %q: %s", validatorAddress, err)
	}
	if hrp != validatorPrefix {
		return nil, errorsmod.Wrapf(ErrMessageEncoding, "validator address %s has prefix %q, expected %q", validatorAddress, hrp, validatorPrefix)
	}

	return distributiontypes.NewMsgWithdrawValidatorCommission(validatorAddress), nil
}

// PackMsg wraps a message in an Any, as it appears in a transaction body.
func PackMsg(msg sdk.Msg) (*codectypes.Any, error) {
	packed, err := codectypes.NewAnyWithValue(msg)
	if err != nil {
		return nil, errorsmod.Wrap(ErrMessageEncoding, err.Error())
	}
	return packed, nil
}
