package resources

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/service/ram"
	"github.com/outofoffice3/org-setup/internal/apierr"
)

// RAMAPI is the subset of the Resource Access Manager client used here.
type RAMAPI interface {
	EnableSharingWithAwsOrganization(ctx context.Context, params *ram.EnableSharingWithAwsOrganizationInput, optFns ...func(*ram.Options)) (*ram.EnableSharingWithAwsOrganizationOutput, error)
}

// RAM wraps the AWS Resource Access Manager API.
type RAM struct {
	client RAMAPI
	region string
}

func NewRAM(client RAMAPI, region string) *RAM {
	return &RAM{
		client: client,
		region: region,
	}
}

// EnableSharingWithAwsOrganization enables Resource Access Manager sharing
// with the organization. Executes in: management account in all regions.
func (r *RAM) EnableSharingWithAwsOrganization(ctx context.Context) error {
	log.Printf("[%s] enabling RAM sharing with organization", r.region)
	_, err := r.client.EnableSharingWithAwsOrganization(ctx, &ram.EnableSharingWithAwsOrganizationInput{})
	if err := apierr.Ignore(err, "OperationNotPermittedException"); err != nil {
		log.Printf("[%s] unable to enable RAM sharing with organization : [%v]", r.region, err)
		return err
	}
	return nil
}
