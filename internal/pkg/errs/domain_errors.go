package errs

import "errors"

// Domain-specific sentinel errors for the scheduler usecase layers
var (
	// Registry errors
	ErrSequenceNotFound  = errors.New("sequence not found")
	ErrStageNotFound     = errors.New("stage not found")
	ErrDuplicateSequence = errors.New("duplicate sequence")

	// Run errors
	ErrCandidateFetchFailed = errors.New("candidate fetch failed")
	ErrInvalidPageSize      = errors.New("invalid page size")
)
