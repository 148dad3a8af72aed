package resources

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/fms"
	"github.com/outofoffice3/org-setup/internal/apierr"
)

// FMSAPI is the subset of the Firewall Manager client used here.
type FMSAPI interface {
	AssociateAdminAccount(ctx context.Context, params *fms.AssociateAdminAccountInput, optFns ...func(*fms.Options)) (*fms.AssociateAdminAccountOutput, error)
}

// FMS wraps the AWS Firewall Manager API.
type FMS struct {
	client FMSAPI
	region string
}

func NewFMS(client FMSAPI, region string) *FMS {
	return &FMS{
		client: client,
		region: region,
	}
}

// AssociateAdminAccount delegates Firewall Manager administration to an
// account. Executes in: management account in all regions.
func (f *FMS) AssociateAdminAccount(ctx context.Context, accountID string) error {
	log.Printf("[%s] delegating Firewall Manager administration to account [%s]", f.region, accountID)
	_, err := f.client.AssociateAdminAccount(ctx, &fms.AssociateAdminAccountInput{
		AdminAccount: aws.String(accountID),
	})
	if apierr.Is(err, "InvalidOperationException") {
		log.Printf("[%s] Firewall Manager delegation is not supported", f.region)
		return nil
	}
	if err := apierr.Ignore(err, "InternalErrorException"); err != nil {
		log.Printf("[%s] unable to delegate Firewall Manager administration to account [%s] : [%v]", f.region, accountID, err)
		return err
	}
	return nil
}
