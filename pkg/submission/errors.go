package submission

import "errors"

var (
	ErrFormInvalid    = errors.New("form is not valid")
	ErrDeliveryFailed = errors.New("failed to deliver submission")
)
