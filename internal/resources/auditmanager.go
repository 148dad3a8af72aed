package resources

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/auditmanager"
	"github.com/outofoffice3/org-setup/internal/apierr"
)

// AuditManagerAPI is the subset of the Audit Manager client used here.
type AuditManagerAPI interface {
	RegisterOrganizationAdminAccount(ctx context.Context, params *auditmanager.RegisterOrganizationAdminAccountInput, optFns ...func(*auditmanager.Options)) (*auditmanager.RegisterOrganizationAdminAccountOutput, error)
}

// AuditManager wraps the AWS Audit Manager API.
type AuditManager struct {
	client AuditManagerAPI
	region string
}

func NewAuditManager(client AuditManagerAPI, region string) *AuditManager {
	return &AuditManager{
		client: client,
		region: region,
	}
}

// RegisterOrganizationAdminAccount delegates Audit Manager administration to
// an account. Executes in: management account in all regions.
func (a *AuditManager) RegisterOrganizationAdminAccount(ctx context.Context, accountID string) error {
	log.Printf("[%s] enabling account [%s] to be Audit Manager admin account", a.region, accountID)
	_, err := a.client.RegisterOrganizationAdminAccount(ctx, &auditmanager.RegisterOrganizationAdminAccountInput{
		AdminAccountId: aws.String(accountID),
	})
	if err := apierr.Ignore(err, "InternalServerException"); err != nil {
		log.Printf("[%s] unable to enable account [%s] to be Audit Manager admin account : [%v]", a.region, accountID, err)
		return err
	}
	return nil
}
