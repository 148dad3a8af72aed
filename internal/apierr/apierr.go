package apierr

import (
	"errors"

	"github.com/aws/smithy-go"
)

// Is reports whether err is an AWS API error with one of the given codes.
func Is(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}

// Ignore swallows API errors whose code marks the resource as already in the
// desired state. Any other error passes through unchanged.
func Ignore(err error, codes ...string) error {
	if err == nil {
		return nil
	}
	if Is(err, codes...) {
		return nil
	}
	return err
}
