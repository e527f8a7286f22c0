package field

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by field operations. All are synchronous; none are
// retried or recovered internally.
var (
	// ErrNotFound is returned when an operation targets a deleted or unknown
	// field id.
	ErrNotFound = errors.New("field not found")

	// ErrRestrictionViolation is returned when a mutation is forbidden by the
	// field's current restriction flags. The operation is a no-op.
	ErrRestrictionViolation = errors.New("restriction violation")

	// ErrInvalidArgument is returned for values rejected by eager validation
	// (tag delimiters, out-of-range opacities). The whole call is aborted
	// before any mutation is applied.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStaleHandle is returned when a script handle references a field that
	// was deleted after the handle was acquired. It wraps ErrNotFound, so
	// errors.Is(err, ErrNotFound) also holds.
	ErrStaleHandle = fmt.Errorf("stale handle: %w", ErrNotFound)
)
