package datagen

import "errors"

// Sentinel errors.
var (
	ErrUnknownHeaders = errors.New("unknown header set")
	ErrVerify         = errors.New("dashboard verification failed")
)
