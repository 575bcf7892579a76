package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates an unknown reference source format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrUnknownConvention indicates a taxonomy naming convention that is
	// not configured.
	ErrUnknownConvention = errors.New("unknown taxonomy convention")

	// ErrToolUnavailable indicates an external tool binary is not on PATH.
	// Classification, filtering and rarefaction are delegated to external
	// tools and are disabled without them.
	ErrToolUnavailable = errors.New("external tool unavailable")

	// ErrToolFailed indicates an external tool exited non-zero.
	ErrToolFailed = errors.New("external tool failed")

	// ErrBuildInProgress indicates a build is already running for the
	// same workspace.
	ErrBuildInProgress = errors.New("build in progress")
)
