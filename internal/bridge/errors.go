package bridge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPermissionDenied marks the one subscription failure the end user can
// act on (a store configuration fix). Every other error passes through
// verbatim.
var ErrPermissionDenied = errors.New("permission-denied")

// permission-error signals, matched case-insensitively against the error text.
var permissionSignals = []string{"permission", "insufficient"}

// Classify sorts a subscription or write error into exactly two buckets:
// access-denied, or everything else unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPermissionDenied) {
		return err
	}
	msg := strings.ToLower(err.Error())
	for _, signal := range permissionSignals {
		if strings.Contains(msg, signal) {
			return fmt.Errorf("%w: %s", ErrPermissionDenied, err.Error())
		}
	}
	return err
}
