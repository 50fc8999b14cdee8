package gosi

import "errors"

var (
	ErrRateConfigNotFound     = errors.New("gosi rate configuration not found")
	ErrRateConfigMissing      = errors.New("no gosi rate configuration and statutory fallback is disabled")
	ErrActiveRateExists       = errors.New("an active gosi rate row already exists for this contributor type")
	ErrInvalidContributorType = errors.New("invalid contributor type")
	ErrInvalidRate            = errors.New("contribution rates must be between 0 and 1")
	ErrInvalidCeiling         = errors.New("wage ceiling must be positive")
)
