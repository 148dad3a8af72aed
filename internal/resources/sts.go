package resources

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// STSAPI is the subset of the STS client used here.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// STS wraps the AWS STS API.
type STS struct {
	client STSAPI
}

func NewSTS(client STSAPI) *STS {
	return &STS{client: client}
}

// CallerAccountID returns the account id of the current credentials.
func (s *STS) CallerAccountID(ctx context.Context) (string, error) {
	output, err := s.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		log.Printf("unable to get caller identity : [%v]", err)
		return "", err
	}
	return aws.ToString(output.Account), nil
}
