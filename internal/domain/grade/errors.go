package grade

import "errors"

var (
	ErrGradeNotFound   = errors.New("grade not found")
	ErrGradeNameExists = errors.New("grade name already exists")
	ErrInvalidBand     = errors.New("salary band minimum must not exceed maximum")
)
