package resources

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/accessanalyzer"
	accessAnalyzerTypes "github.com/aws/aws-sdk-go-v2/service/accessanalyzer/types"
	"github.com/outofoffice3/org-setup/internal/apierr"
	"github.com/outofoffice3/org-setup/internal/shared"
)

// AccessAnalyzerAPI is the subset of the Access Analyzer client used here.
type AccessAnalyzerAPI interface {
	CreateAnalyzer(ctx context.Context, params *accessanalyzer.CreateAnalyzerInput, optFns ...func(*accessanalyzer.Options)) (*accessanalyzer.CreateAnalyzerOutput, error)
}

// AccessAnalyzer wraps the AWS IAM Access Analyzer API.
type AccessAnalyzer struct {
	client AccessAnalyzerAPI
	region string
}

func NewAccessAnalyzer(client AccessAnalyzerAPI, region string) *AccessAnalyzer {
	return &AccessAnalyzer{
		client: client,
		region: region,
	}
}

// CreateOrganizationAnalyzer creates an organizational IAM access analyzer.
// Executes in: delegated administrator account in all regions.
func (a *AccessAnalyzer) CreateOrganizationAnalyzer(ctx context.Context) error {
	log.Printf("[%s] creating organizational IAM access analyzer", a.region)
	_, err := a.client.CreateAnalyzer(ctx, &accessanalyzer.CreateAnalyzerInput{
		AnalyzerName: aws.String(shared.OrganizationAnalyzerName),
		Type:         accessAnalyzerTypes.TypeOrganization,
	})
	if err := apierr.Ignore(err, "ConflictException"); err != nil {
		log.Printf("[%s] unable to create an organizational IAM access analyzer : [%v]", a.region, err)
		return err
	}
	return nil
}

// CreateManagementAnalyzer creates an account IAM access analyzer for the
// management account. Executes in: management account in all regions.
func (a *AccessAnalyzer) CreateManagementAnalyzer(ctx context.Context) error {
	log.Printf("[%s] creating account IAM access analyzer", a.region)
	_, err := a.client.CreateAnalyzer(ctx, &accessanalyzer.CreateAnalyzerInput{
		AnalyzerName: aws.String(shared.ManagementAnalyzerName),
		Type:         accessAnalyzerTypes.TypeAccount,
	})
	if err := apierr.Ignore(err, "ConflictException"); err != nil {
		log.Printf("[%s] unable to create an account IAM access analyzer : [%v]", a.region, err)
		return err
	}
	return nil
}
