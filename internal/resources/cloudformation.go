package resources

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/outofoffice3/org-setup/internal/apierr"
)

// CloudFormationAPI is the subset of the CloudFormation client used here.
type CloudFormationAPI interface {
	ActivateOrganizationsAccess(ctx context.Context, params *cloudformation.ActivateOrganizationsAccessInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ActivateOrganizationsAccessOutput, error)
}

// CloudFormation wraps the AWS CloudFormation API.
type CloudFormation struct {
	client CloudFormationAPI
	region string
}

func NewCloudFormation(client CloudFormationAPI, region string) *CloudFormation {
	return &CloudFormation{
		client: client,
		region: region,
	}
}

// ActivateOrganizationsAccess activates organization access for
// CloudFormation StackSets. Executes in: management account in all regions.
func (c *CloudFormation) ActivateOrganizationsAccess(ctx context.Context) error {
	log.Printf("[%s] activating organizations access for CloudFormation StackSets", c.region)
	_, err := c.client.ActivateOrganizationsAccess(ctx, &cloudformation.ActivateOrganizationsAccessInput{})
	if err := apierr.Ignore(err, "InvalidOperationException"); err != nil {
		log.Printf("[%s] unable to activate organizations access : [%v]", c.region, err)
		return err
	}
	return nil
}
