package withdraw

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

const codespace = "withdraw"

var ErrMessageEncoding = errorsmod.Register(codespace, 2, "failed to encode message")

// Stage names a step of the pipeline.
type Stage string

const (
	StageLoadKey        Stage = "load-key"
	StageBuildMessage   Stage = "build-message"
	StageResolveAccount Stage = "resolve-account"
	StageSign           Stage = "sign"
	StageBroadcast      Stage = "broadcast"
)

// StageError records which stage of the pipeline failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
