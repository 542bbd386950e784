// Package apperr defines the failure taxonomy shared by every service.
// Public operations return one of these classes; underlying storage and
// network errors are wrapped at the call site and never cross a service
// boundary unconverted.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no resolvable current user.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidOrder means the order draft is structurally incomplete.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrStorage means a local-store operation failed.
	ErrStorage = errors.New("storage failure")

	// ErrRemoteWrite means the remote order store rejected the write or
	// was unreachable.
	ErrRemoteWrite = errors.New("remote write failure")
)

// Storage wraps a local-store error into the taxonomy, preserving the
// cause for diagnostics.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// RemoteWrite wraps a remote-store error into the taxonomy.
func RemoteWrite(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrRemoteWrite, err)
}
