package tx

import (
	"context"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cbrit/withdraw-commission/cosmos/rpc"
	"github.com/cbrit/withdraw-commission/log"
)

// SigningMetadataProvider resolves the account number and sequence of the signer.
type SigningMetadataProvider struct {
	accountClient rpc.AccountClient
	mode          AccountQueryMode

	logger *log.Logger
}

func NewSigningMetadataProvider(accountClient rpc.AccountClient, mode AccountQueryMode, logger *log.Logger) (*SigningMetadataProvider, error) {
	parsedMode, err := ParseAccountQueryMode(string(mode))
	if err != nil {
		return nil, err
	}

	return &SigningMetadataProvider{
		accountClient: accountClient,
		mode:          parsedMode,
		logger:        logger,
	}, nil
}

func (smp *SigningMetadataProvider) SigningMetadataForAccount(ctx context.Context, address string) (*SigningMetadata, error) {
	var (
		metadata *SigningMetadata
		err      error
	)

	switch smp.mode {
	case AccountQueryAccount:
		metadata, err = smp.fromAccount(ctx, address)
	case AccountQueryAccountInfo:
		metadata, err = smp.fromAccountInfo(ctx, address)
	default:
		metadata, err = smp.fromAccountInfo(ctx, address)
		if status.Code(err) == codes.Unimplemented {
			smp.logger.Debug("node does not implement AccountInfo, falling back to Account", "address", address, "error", err.Error())
			metadata, err = smp.fromAccount(ctx, address)
		}
	}
	if err != nil {
		return nil, errorsmod.Wrapf(ErrAccountQuery, "address %s: %s", address, err)
	}

	smp.logger.Debug("resolved signing metadata", "address", address, "account_number", metadata.AccountNumber(), "sequence", metadata.Sequence())
	return metadata, nil
}

func (smp *SigningMetadataProvider) fromAccount(ctx context.Context, address string) (*SigningMetadata, error) {
	account, err := smp.accountClient.Account(ctx, address)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("no account returned")
	}

	return NewSigningMetadata(address, account.GetAccountNumber(), account.GetSequence()), nil
}

func (smp *SigningMetadataProvider) fromAccountInfo(ctx context.Context, address string) (*SigningMetadata, error) {
	info, err := smp.accountClient.AccountInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("no account info returned")
	}

	return NewSigningMetadata(address, info.AccountNumber, info.Sequence), nil
}
