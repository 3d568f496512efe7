package httputil

import "errors"

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidUUID      = errors.New("the specified resource ID is not a valid UUID")
	ErrInvalidMonth     = errors.New("the month must be specified as YYYY-MM")
	ErrInvalidDate      = errors.New("the date must be specified as YYYY-MM-DD")

	ErrInvalidQueryString = errors.New("the query string contains unparseable data. Please check the values")
)
