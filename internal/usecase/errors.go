package usecase

import "errors"

var (
	ErrInternal           = errors.New("internal error")
	ErrInvalidInput       = errors.New("invalid input")
	ErrJobNotFound        = errors.New("job posting not found")
	ErrJobNotActive       = errors.New("job posting is not active")
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrTrainingInProgress = errors.New("a training run is already in progress")
	ErrModelNotTrained    = errors.New("model not trained")
)
