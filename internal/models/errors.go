package models

import (
	"errors"
)

var (
	// ErrGeneral is returned for infrastructure faults where no more
	// specific message can be given to the user.
	ErrGeneral = errors.New("an error occurred on the server during your request")

	// ErrResourceNotFound is wrapped by all "does not exist" errors. A
	// resource another user owns is reported exactly the same way as one
	// that never existed.
	ErrResourceNotFound = errors.New("there is no")

	// ErrAmountNotPositive is returned when a money movement of zero or a
	// negative amount is requested.
	ErrAmountNotPositive = errors.New("the amount must be larger than zero")
)
