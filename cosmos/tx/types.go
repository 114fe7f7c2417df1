package tx

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

type SigningMetadata struct {
	address       string
	accountNumber uint64
	sequence      uint64
}

func NewSigningMetadata(address string, accountNumber, sequence uint64) *SigningMetadata {
	return &SigningMetadata{
		address:       address,
		accountNumber: accountNumber,
		sequence:      sequence,
	}
}

func (sm *SigningMetadata) Address() string {
	return sm.address
}

func (sm *SigningMetadata) AccountNumber() uint64 {
	return sm.accountNumber
}

func (sm *SigningMetadata) Sequence() uint64 {
	return sm.sequence
}

// SignedTx holds a signed transaction along with the bytes that were signed.
type SignedTx struct {
	// SignDoc is the serialized SIGN_MODE_DIRECT sign doc.
	SignDoc   []byte
	Signature []byte

	// TxBytes is the serialized TxRaw, ready to broadcast.
	TxBytes []byte
}

// FeePolicy is a fixed fee and gas limit. Gas is never simulated.
type FeePolicy struct {
	Amount   sdk.Coins
	GasLimit uint64
}

func NewFeePolicy(denom string, amount math.Int, gasLimit uint64) (FeePolicy, error) {
	if err := sdk.ValidateDenom(denom); err != nil {
		return FeePolicy{}, err
	}
	if amount.IsNil() || amount.IsNegative() {
		return FeePolicy{}, fmt.Errorf("fee amount must not be negative")
	}
	if gasLimit == 0 {
		return FeePolicy{}, fmt.Errorf("gas limit must be positive")
	}

	return FeePolicy{
		Amount:   sdk.NewCoins(sdk.NewCoin(denom, amount)),
		GasLimit: gasLimit,
	}, nil
}

// AccountQueryMode selects which auth query resolves account metadata.
type AccountQueryMode string

const (
	// Try AccountInfo first, and fall back to Account on nodes which do not implement it.
	AccountQueryAuto        AccountQueryMode = "auto"
	AccountQueryAccount     AccountQueryMode = "account"
	AccountQueryAccountInfo AccountQueryMode = "account-info"
)

func ParseAccountQueryMode(input string) (AccountQueryMode, error) {
	mode := AccountQueryMode(strings.ToLower(strings.TrimSpace(input)))
	switch mode {
	case AccountQueryAuto, AccountQueryAccount, AccountQueryAccountInfo:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown account query mode: %q (expected one of: auto, account, account-info)", input)
	}
}

// BroadcastMode selects how long a broadcast waits.
type BroadcastMode string

const (
	BroadcastModeCommit BroadcastMode = "commit"
	BroadcastModeSync   BroadcastMode = "sync"
)

func ParseBroadcastMode(input string) (BroadcastMode, error) {
	mode := BroadcastMode(strings.ToLower(strings.TrimSpace(input)))
	switch mode {
	case BroadcastModeCommit, BroadcastModeSync:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown broadcast mode: %q (expected one of: commit, sync)", input)
	}
}
