package crypto

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "signer"

var (
	ErrKeyLoad           = errorsmod.Register(codespace, 2, "failed to read private key from file")
	ErrKeyDecode         = errorsmod.Register(codespace, 3, "failed to decode private key")
	ErrInvalidKey        = errorsmod.Register(codespace, 4, "invalid private key")
	ErrAddressDerivation = errorsmod.Register(codespace, 5, "failed to derive address")
)
