package formapi

import "errors"

var (
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidSignals    = errors.New("invalid signals payload")
	ErrNothingToDismiss  = errors.New("no notification is visible")
	ErrStreamUnsupported = errors.New("streaming is not supported")
)
