package main

import (
	"errors"
)

var (
	ERR_BAD_INPUT            error = errors.New("Can't read height map")
	ERR_CROSS_CHECK          error = errors.New("Search results disagree")
	ERR_CANT_PUBLISH         error = errors.New("Can't publish result")
	ERR_CANCELLED_BY_CONTEXT error = errors.New("Cancelled via context")
	ERR_INTERRUPTED_BY_USER  error = errors.New("Interrupted by user")
)
