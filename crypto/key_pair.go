package crypto

import (
	errorsmod "cosmossdk.io/errors"
	btcec "github.com/btcsuite/btcd/btcec/v2"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// Coin type used by cosmos-sdk chains which did not pick their own SLIP-44 value.
const CosmosCoinType uint32 = 118

type KeyPair struct {
	Public  cryptotypes.PubKey
	Private cryptotypes.PrivKey
}

var _ BytesSigner = (*KeyPair)(nil)

// NewKeyPairFromPrivateKey builds a secp256k1 key pair from a raw private scalar.
func NewKeyPairFromPrivateKey(privateKey []byte) (*KeyPair, error) {
	if len(privateKey) != secp256k1.PrivKeySize {
		return nil, errorsmod.Wrapf(ErrInvalidKey, "expected %d bytes, got %d", secp256k1.PrivKeySize, len(privateKey))
	}

	// The scalar must be in [1, N-1].
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(privateKey); overflow || scalar.IsZero() {
		return nil, errorsmod.Wrap(ErrInvalidKey, "key is not a valid secp256k1 scalar")
	}

	key := make([]byte, secp256k1.PrivKeySize)
	copy(key, privateKey)

	privKey := &secp256k1.PrivKey{Key: key}
	return &KeyPair{
		Public:  privKey.PubKey(),
		Private: privKey,
	}, nil
}

// NewKeyPairFromMnemonic returns the key pair at m/44'/coinType'/0'/0/0 for the given mnemonic.
func NewKeyPairFromMnemonic(mnemonic string, coinType uint32) (*KeyPair, error) {
	bip44Path := hd.CreateHDPath(coinType, 0, 0).String()

	algo := hd.Secp256k1
	derivedPriv, err := algo.Derive()(mnemonic, keyring.DefaultBIP39Passphrase, bip44Path)
	if err != nil {
		return nil, errorsmod.Wrap(ErrKeyDecode, err.Error())
	}
	privKey := algo.Generate()(derivedPriv)

	return NewKeyPairFromPrivateKey(privKey.Bytes())
}

func (kp *KeyPair) GetAddress(prefix string) (string, error) {
	if prefix == "" {
		return "", errorsmod.Wrap(ErrAddressDerivation, "empty bech32 prefix")
	}

	address := sdk.AccAddress(kp.Public.Address())
	encoded, err := bech32.ConvertAndEncode(prefix, address)
	if err != nil {
		return "", errorsmod.Wrapf(ErrAddressDerivation, "prefix %s: %s", prefix, err)
	}
	return encoded, nil
}

func (kp *KeyPair) SignBytes(
	bytesToSign []byte,
) ([]byte, error) {
	return kp.Private.Sign(bytesToSign)
}

func (kp *KeyPair) GetPublicKey() cryptotypes.PubKey {
	return kp.Public
}
