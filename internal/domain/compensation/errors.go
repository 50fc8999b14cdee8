package compensation

import "errors"

var (
	ErrChangeRecordNotFound = errors.New("compensation change record not found")
	ErrNoAdjustment         = errors.New("no compensation adjustment supplied")
	ErrAmbiguousAdjustment  = errors.New("supply either an absolute basic salary or an adjustment percentage, not both")
	ErrEmployeeLocked       = errors.New("another compensation change for this employee is in progress")
)
