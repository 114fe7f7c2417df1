package crypto

import (
	"fmt"
	"os"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/cbrit/withdraw-commission/coding"
)

// KeyFormat describes how the contents of a key file are interpreted.
type KeyFormat string

const (
	KeyFormatHex      KeyFormat = "hex"
	KeyFormatMnemonic KeyFormat = "mnemonic"
)

func ParseKeyFormat(input string) (KeyFormat, error) {
	format := KeyFormat(strings.ToLower(strings.TrimSpace(input)))
	switch format {
	case KeyFormatHex, KeyFormatMnemonic:
		return format, nil
	default:
		return "", fmt.Errorf("unknown key format: %q (expected one of: hex, mnemonic)", input)
	}
}

// LoadKeyPair reads a key file and builds the signing identity from its trimmed contents.
func LoadKeyPair(path string, format KeyFormat, coinType uint32) (*KeyPair, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errorsmod.Wrap(ErrKeyLoad, err.Error())
	}
	trimmed := strings.TrimSpace(string(contents))

	switch format {
	case KeyFormatMnemonic:
		return NewKeyPairFromMnemonic(trimmed, coinType)
	case KeyFormatHex, "":
		privateKey, err := coding.DecodeHex(trimmed)
		if err != nil {
			return nil, errorsmod.Wrap(ErrKeyDecode, err.Error())
		}
		return NewKeyPairFromPrivateKey(privateKey)
	default:
		return nil, errorsmod.Wrapf(ErrKeyDecode, "unknown key format %q", format)
	}
}
