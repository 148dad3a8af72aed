package apierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	assertion := assert.New(t)

	conflict := &smithy.GenericAPIError{Code: "ConflictException", Message: "already enabled"}
	assertion.True(Is(conflict, "ConflictException"))
	assertion.True(Is(conflict, "BadRequestException", "ConflictException"))
	assertion.False(Is(conflict, "BadRequestException"))

	// wrapped API errors are still recognized
	wrapped := fmt.Errorf("enabling macie: %w", conflict)
	assertion.True(Is(wrapped, "ConflictException"))

	assertion.False(Is(errors.New("plain error"), "ConflictException"))
	assertion.False(Is(nil, "ConflictException"))
}

func TestIgnore(t *testing.T) {
	assertion := assert.New(t)

	conflict := &smithy.GenericAPIError{Code: "ResourceConflictException"}
	assertion.NoError(Ignore(conflict, "ResourceConflictException"))
	assertion.NoError(Ignore(nil, "ResourceConflictException"))

	internal := &smithy.GenericAPIError{Code: "InternalFailure"}
	assertion.Equal(internal, Ignore(internal, "ResourceConflictException"))

	plain := errors.New("dial tcp: i/o timeout")
	assertion.Equal(plain, Ignore(plain, "ResourceConflictException"))
}
