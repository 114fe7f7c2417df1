package util

import (
	"errors"
	"fmt"
)

// InterfaceToError converts the value returned by recover() into an error.
func InterfaceToError(recovered any) error {
	switch value := recovered.(type) {
	case nil:
		return nil
	case error:
		return value
	case string:
		return errors.New(value)
	case fmt.Stringer:
		return errors.New(value.String())
	default:
		return fmt.Errorf("recovered from a panic that was neither a string nor an error: %v", value)
	}
}
