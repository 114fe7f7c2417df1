package main

import (
	"errors"

	"github.com/cbrit/withdraw-commission/cosmos/tx"
)

const (
	// ExitSuccess indicates the transaction was committed, or signed on a dry run.
	ExitSuccess = 0

	// ExitFailure indicates any failure before or during the broadcast.
	ExitFailure = 1

	// ExitRejected indicates the node received the transaction but rejected it.
	ExitRejected = 2
)

// CodeForError maps the result of a run to the process exit code.
func CodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, tx.ErrTxRejected):
		return ExitRejected
	default:
		return ExitFailure
	}
}
