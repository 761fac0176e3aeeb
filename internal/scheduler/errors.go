package scheduler

import "errors"

var (
	ErrUnknownProfile  = errors.New("scheduler: unknown reward profile")
	ErrInvalidPattern  = errors.New("scheduler: invalid punishment cycle pattern")
	ErrUnknownRecovery = errors.New("scheduler: unknown recovery mode")
	ErrUnknownOverflow = errors.New("scheduler: unknown overflow strategy")
)
