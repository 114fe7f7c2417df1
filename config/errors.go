package config

import errorsmod "cosmossdk.io/errors"

const codespace = "config"

var ErrInvalidConfig = errorsmod.Register(codespace, 2, "invalid configuration")
