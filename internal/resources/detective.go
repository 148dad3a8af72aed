package resources

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/detective"
	"github.com/outofoffice3/org-setup/internal/apierr"
)

// DetectiveAPI is the subset of the Detective client used here.
type DetectiveAPI interface {
	EnableOrganizationAdminAccount(ctx context.Context, params *detective.EnableOrganizationAdminAccountInput, optFns ...func(*detective.Options)) (*detective.EnableOrganizationAdminAccountOutput, error)
}

// Detective wraps the AWS Detective API.
type Detective struct {
	client DetectiveAPI
	region string
}

func NewDetective(client DetectiveAPI, region string) *Detective {
	return &Detective{
		client: client,
		region: region,
	}
}

// EnableOrganizationAdminAccount delegates Detective administration to an
// account. Detective needs GuardDuty to have been active for 48 hours, so
// this is opt-in. Executes in: management account in all regions.
func (d *Detective) EnableOrganizationAdminAccount(ctx context.Context, accountID string) error {
	log.Printf("[%s] delegating Detective administration to account [%s]", d.region, accountID)
	_, err := d.client.EnableOrganizationAdminAccount(ctx, &detective.EnableOrganizationAdminAccountInput{
		AccountId: aws.String(accountID),
	})
	if err := apierr.Ignore(err, "InternalServerException"); err != nil {
		log.Printf("[%s] unable to delegate Detective administration to account [%s] : [%v]", d.region, accountID, err)
		return err
	}
	return nil
}
