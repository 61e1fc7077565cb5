package errors

import "errors"

var (
	ErrBusinessNotFound   = errors.New("business not found")
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrCreatorNotFound    = errors.New("creator not found")
	ErrAssignmentNotFound = errors.New("no active assignment for creator on campaign")

	ErrCreatorAlreadyAssigned = errors.New("creator already actively assigned to campaign")
	ErrCampaignAlreadyExists  = errors.New("campaign already exists for business and month")
	ErrStaleStageTransition   = errors.New("stage transition is stale, re-read current stage")

	ErrInvalidStage      = errors.New("unknown pipeline stage")
	ErrInvalidMonthToken = errors.New("unrecognized month token")
	ErrInvalidInput      = errors.New("invalid input")

	// ErrCountMismatch signals the count invariant was observed broken
	// mid-operation. Callers should run the integrity fix path.
	ErrCountMismatch = errors.New("assigned count does not match active assignment set")
)
