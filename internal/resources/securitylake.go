package resources

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/securitylake"
	"github.com/outofoffice3/org-setup/internal/apierr"
)

// SecurityLakeAPI is the subset of the Security Lake client used here.
type SecurityLakeAPI interface {
	RegisterDataLakeDelegatedAdministrator(ctx context.Context, params *securitylake.RegisterDataLakeDelegatedAdministratorInput, optFns ...func(*securitylake.Options)) (*securitylake.RegisterDataLakeDelegatedAdministratorOutput, error)
}

// SecurityLake wraps the AWS Security Lake API.
type SecurityLake struct {
	client SecurityLakeAPI
	region string
}

func NewSecurityLake(client SecurityLakeAPI, region string) *SecurityLake {
	return &SecurityLake{
		client: client,
		region: region,
	}
}

// RegisterDelegatedAdministrator delegates Security Lake administration to an
// account. A validation error marks the account as already delegated.
// Executes in: management account in all regions.
func (s *SecurityLake) RegisterDelegatedAdministrator(ctx context.Context, accountID string) error {
	log.Printf("[%s] delegating Security Lake administration to account [%s]", s.region, accountID)
	_, err := s.client.RegisterDataLakeDelegatedAdministrator(ctx, &securitylake.RegisterDataLakeDelegatedAdministratorInput{
		AccountId: aws.String(accountID),
	})
	if err := apierr.Ignore(err, "ValidationException"); err != nil {
		log.Printf("[%s] unable to delegate Security Lake administration to account [%s] : [%v]", s.region, accountID, err)
		return err
	}
	return nil
}
