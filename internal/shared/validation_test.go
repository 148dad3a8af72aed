package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAccountID(t *testing.T) {
	assertion := assert.New(t)

	assertion.True(IsValidAccountID("123456789012"))
	assertion.False(IsValidAccountID("12345678901"))
	assertion.False(IsValidAccountID("1234567890123"))
	assertion.False(IsValidAccountID("12345678901a"))
	assertion.False(IsValidAccountID(""))
}

func TestIsValidRegion(t *testing.T) {
	assertion := assert.New(t)

	assertion.True(IsValidRegion("us-east-1"))
	assertion.True(IsValidRegion("ap-southeast-2"))
	assertion.True(IsValidRegion("us-gov-west-1"))
	assertion.False(IsValidRegion("useast1"))
	assertion.False(IsValidRegion("us-east"))
	assertion.False(IsValidRegion("US-EAST-1"))
	assertion.False(IsValidRegion(""))
}

func TestSplitRegions(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal([]string{"us-east-1", "eu-west-1"}, SplitRegions("us-east-1,eu-west-1"))
	assertion.Equal([]string{"us-east-1"}, SplitRegions("us-east-1,"))
	assertion.Equal([]string{"us-east-1"}, SplitRegions(" us-east-1 "))
	assertion.Empty(SplitRegions(""))
}
