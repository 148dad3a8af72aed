package resources

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/service/servicecatalog"
	"github.com/outofoffice3/org-setup/internal/apierr"
)

// ServiceCatalogAPI is the subset of the Service Catalog client used here.
type ServiceCatalogAPI interface {
	EnableAWSOrganizationsAccess(ctx context.Context, params *servicecatalog.EnableAWSOrganizationsAccessInput, optFns ...func(*servicecatalog.Options)) (*servicecatalog.EnableAWSOrganizationsAccessOutput, error)
}

// ServiceCatalog wraps the AWS Service Catalog API.
type ServiceCatalog struct {
	client ServiceCatalogAPI
	region string
}

func NewServiceCatalog(client ServiceCatalogAPI, region string) *ServiceCatalog {
	return &ServiceCatalog{
		client: client,
		region: region,
	}
}

// EnableAWSOrganizationsAccess enables organizational sharing for Service
// Catalog. Executes in: management account in all regions.
func (s *ServiceCatalog) EnableAWSOrganizationsAccess(ctx context.Context) error {
	log.Printf("[%s] enabling organizational access for ServiceCatalog", s.region)
	_, err := s.client.EnableAWSOrganizationsAccess(ctx, &servicecatalog.EnableAWSOrganizationsAccessInput{})
	if err := apierr.Ignore(err, "InvalidStateException"); err != nil {
		log.Printf("[%s] unable to enable organizational access for ServiceCatalog : [%v]", s.region, err)
		return err
	}
	return nil
}
