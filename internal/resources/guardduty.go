package resources

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/guardduty"
	guardDutyTypes "github.com/aws/aws-sdk-go-v2/service/guardduty/types"
	"github.com/outofoffice3/org-setup/internal/apierr"
	"github.com/outofoffice3/org-setup/internal/shared"
)

// GuardDutyAPI is the subset of the GuardDuty client used here.
type GuardDutyAPI interface {
	EnableOrganizationAdminAccount(ctx context.Context, params *guardduty.EnableOrganizationAdminAccountInput, optFns ...func(*guardduty.Options)) (*guardduty.EnableOrganizationAdminAccountOutput, error)
	ListDetectors(ctx context.Context, params *guardduty.ListDetectorsInput, optFns ...func(*guardduty.Options)) (*guardduty.ListDetectorsOutput, error)
	CreateDetector(ctx context.Context, params *guardduty.CreateDetectorInput, optFns ...func(*guardduty.Options)) (*guardduty.CreateDetectorOutput, error)
	UpdateOrganizationConfiguration(ctx context.Context, params *guardduty.UpdateOrganizationConfigurationInput, optFns ...func(*guardduty.Options)) (*guardduty.UpdateOrganizationConfigurationOutput, error)
	CreateMembers(ctx context.Context, params *guardduty.CreateMembersInput, optFns ...func(*guardduty.Options)) (*guardduty.CreateMembersOutput, error)
}

// GuardDuty wraps the AWS GuardDuty API.
type GuardDuty struct {
	client GuardDutyAPI
	region string
}

func NewGuardDuty(client GuardDutyAPI, region string) *GuardDuty {
	return &GuardDuty{
		client: client,
		region: region,
	}
}

// EnableOrganizationAdminAccount delegates GuardDuty administration to an
// account. Executes in: management account in all regions.
func (g *GuardDuty) EnableOrganizationAdminAccount(ctx context.Context, accountID string) error {
	log.Printf("[%s] enabling account [%s] to be GuardDuty admin account", g.region, accountID)
	_, err := g.client.EnableOrganizationAdminAccount(ctx, &guardduty.EnableOrganizationAdminAccountInput{
		AdminAccountId: aws.String(accountID),
	})
	if err := apierr.Ignore(err, "BadRequestException"); err != nil {
		log.Printf("[%s] unable to enable account [%s] to be GuardDuty admin account : [%v]", g.region, accountID, err)
		return err
	}
	return nil
}

// EnsureDetectors returns the detector ids in the account, creating a
// detector with S3 protection when none exists. Executes in: delegated
// administrator account in all regions.
func (g *GuardDuty) EnsureDetectors(ctx context.Context) ([]string, error) {
	detectorIDs := make([]string, 0)
	paginator := guardduty.NewListDetectorsPaginator(g.client, &guardduty.ListDetectorsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			log.Printf("[%s] unable to list GuardDuty detectors : [%v]", g.region, err)
			return nil, err
		}
		detectorIDs = append(detectorIDs, page.DetectorIds...)
	}

	if len(detectorIDs) == 0 {
		log.Printf("[%s] creating GuardDuty detector", g.region)
		output, err := g.client.CreateDetector(ctx, &guardduty.CreateDetectorInput{
			Enable: aws.Bool(true),
			DataSources: &guardDutyTypes.DataSourceConfigurations{
				S3Logs: &guardDutyTypes.S3LogsConfiguration{
					Enable: aws.Bool(true),
				},
			},
			FindingPublishingFrequency: guardDutyTypes.FindingPublishingFrequencySixHours,
		})
		if err != nil {
			log.Printf("[%s] unable to create GuardDuty detector : [%v]", g.region, err)
			return nil, err
		}
		detectorIDs = append(detectorIDs, aws.ToString(output.DetectorId))
	}
	return detectorIDs, nil
}

// UpdateOrganizationConfiguration auto-enrolls new organization accounts in
// GuardDuty with S3 protection. Executes in: delegated administrator account
// in all regions.
func (g *GuardDuty) UpdateOrganizationConfiguration(ctx context.Context, detectorID string) error {
	_, err := g.client.UpdateOrganizationConfiguration(ctx, &guardduty.UpdateOrganizationConfigurationInput{
		DetectorId:                    aws.String(detectorID),
		AutoEnableOrganizationMembers: guardDutyTypes.AutoEnableMembersAll,
		DataSources: &guardDutyTypes.OrganizationDataSourceConfigurations{
			S3Logs: &guardDutyTypes.OrganizationS3LogsConfiguration{
				AutoEnable: aws.Bool(true),
			},
		},
	})
	if err != nil {
		log.Printf("[%s] unable to update GuardDuty organization configuration for detector [%s] : [%v]", g.region, detectorID, err)
		return err
	}
	log.Printf("[%s] updated GuardDuty detector [%s] to auto-enroll new accounts", g.region, detectorID)
	return nil
}

// CreateMembers registers the organization accounts as GuardDuty members of
// the detector. Executes in: delegated administrator account in all regions.
func (g *GuardDuty) CreateMembers(ctx context.Context, detectorID string, accounts []shared.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	details := make([]guardDutyTypes.AccountDetail, 0, len(accounts))
	for _, account := range accounts {
		details = append(details, guardDutyTypes.AccountDetail{
			AccountId: aws.String(account.ID),
			Email:     aws.String(account.Email),
		})
	}

	output, err := g.client.CreateMembers(ctx, &guardduty.CreateMembersInput{
		DetectorId:     aws.String(detectorID),
		AccountDetails: details,
	})
	if err != nil {
		log.Printf("[%s] unable to create GuardDuty members for detector [%s] : [%v]", g.region, detectorID, err)
		return err
	}
	if len(output.UnprocessedAccounts) > 0 {
		log.Printf("[%s] [%d] GuardDuty member accounts were not processed", g.region, len(output.UnprocessedAccounts))
	}
	return nil
}
