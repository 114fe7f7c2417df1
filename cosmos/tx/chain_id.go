package tx

import (
	"unicode"

	errorsmod "cosmossdk.io/errors"

	cmttypes "github.com/cometbft/cometbft/types"
)

// ValidateChainID checks that a chain id can be embedded in a sign doc.
func ValidateChainID(chainID string) error {
	if chainID == "" {
		return errorsmod.Wrap(ErrChainIDParse, "chain id is empty")
	}
	if len(chainID) > cmttypes.MaxChainIDLen {
		return errorsmod.Wrapf(ErrChainIDParse, "chain id %q is longer than %d characters", chainID, cmttypes.MaxChainIDLen)
	}

	for _, r := range chainID {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return errorsmod.Wrapf(ErrChainIDParse, "chain id %q contains whitespace or control characters", chainID)
		}
	}
	return nil
}
