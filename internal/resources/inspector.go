package resources

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/inspector2"
	"github.com/outofoffice3/org-setup/internal/apierr"
)

// InspectorAPI is the subset of the Inspector client used here.
type InspectorAPI interface {
	EnableDelegatedAdminAccount(ctx context.Context, params *inspector2.EnableDelegatedAdminAccountInput, optFns ...func(*inspector2.Options)) (*inspector2.EnableDelegatedAdminAccountOutput, error)
}

// Inspector wraps the AWS Inspector API.
type Inspector struct {
	client InspectorAPI
	region string
}

func NewInspector(client InspectorAPI, region string) *Inspector {
	return &Inspector{
		client: client,
		region: region,
	}
}

// EnableDelegatedAdminAccount delegates Inspector administration to an
// account. Executes in: management account in all regions.
func (i *Inspector) EnableDelegatedAdminAccount(ctx context.Context, accountID string) error {
	log.Printf("[%s] delegating Inspector administration to account [%s]", i.region, accountID)
	_, err := i.client.EnableDelegatedAdminAccount(ctx, &inspector2.EnableDelegatedAdminAccountInput{
		DelegatedAdminAccountId: aws.String(accountID),
	})
	if err := apierr.Ignore(err, "ConflictException"); err != nil {
		log.Printf("[%s] unable to delegate Inspector administration to account [%s] : [%v]", i.region, accountID, err)
		return err
	}
	return nil
}
