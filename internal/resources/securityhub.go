package resources

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/securityhub"
	securityHubTypes "github.com/aws/aws-sdk-go-v2/service/securityhub/types"
	"github.com/outofoffice3/org-setup/internal/apierr"
	"github.com/outofoffice3/org-setup/internal/shared"
)

// SecurityHubAPI is the subset of the Security Hub client used here.
type SecurityHubAPI interface {
	EnableOrganizationAdminAccount(ctx context.Context, params *securityhub.EnableOrganizationAdminAccountInput, optFns ...func(*securityhub.Options)) (*securityhub.EnableOrganizationAdminAccountOutput, error)
	UpdateOrganizationConfiguration(ctx context.Context, params *securityhub.UpdateOrganizationConfigurationInput, optFns ...func(*securityhub.Options)) (*securityhub.UpdateOrganizationConfigurationOutput, error)
	CreateMembers(ctx context.Context, params *securityhub.CreateMembersInput, optFns ...func(*securityhub.Options)) (*securityhub.CreateMembersOutput, error)
	ListFindingAggregators(ctx context.Context, params *securityhub.ListFindingAggregatorsInput, optFns ...func(*securityhub.Options)) (*securityhub.ListFindingAggregatorsOutput, error)
	CreateFindingAggregator(ctx context.Context, params *securityhub.CreateFindingAggregatorInput, optFns ...func(*securityhub.Options)) (*securityhub.CreateFindingAggregatorOutput, error)
	GetEnabledStandards(ctx context.Context, params *securityhub.GetEnabledStandardsInput, optFns ...func(*securityhub.Options)) (*securityhub.GetEnabledStandardsOutput, error)
	BatchDisableStandards(ctx context.Context, params *securityhub.BatchDisableStandardsInput, optFns ...func(*securityhub.Options)) (*securityhub.BatchDisableStandardsOutput, error)
}

// SecurityHub wraps the AWS Security Hub API.
type SecurityHub struct {
	client SecurityHubAPI
	region string
}

func NewSecurityHub(client SecurityHubAPI, region string) *SecurityHub {
	return &SecurityHub{
		client: client,
		region: region,
	}
}

// EnableOrganizationAdminAccount delegates Security Hub administration to an
// account. Executes in: management account in all regions.
func (s *SecurityHub) EnableOrganizationAdminAccount(ctx context.Context, accountID string) error {
	log.Printf("[%s] enabling account [%s] to be SecurityHub admin account", s.region, accountID)
	_, err := s.client.EnableOrganizationAdminAccount(ctx, &securityhub.EnableOrganizationAdminAccountInput{
		AdminAccountId: aws.String(accountID),
	})
	if err := apierr.Ignore(err, "ResourceConflictException"); err != nil {
		log.Printf("[%s] unable to enable account [%s] to be SecurityHub admin account : [%v]", s.region, accountID, err)
		return err
	}
	return nil
}

// UpdateOrganizationConfiguration auto-enrolls new organization accounts in
// Security Hub. Executes in: delegated administrator account in all regions.
func (s *SecurityHub) UpdateOrganizationConfiguration(ctx context.Context) error {
	_, err := s.client.UpdateOrganizationConfiguration(ctx, &securityhub.UpdateOrganizationConfigurationInput{
		AutoEnable: aws.Bool(true),
	})
	if err != nil {
		log.Printf("[%s] unable to update SecurityHub organization configuration : [%v]", s.region, err)
		return err
	}
	log.Printf("[%s] updated SecurityHub to auto-enroll new accounts", s.region)
	return nil
}

// CreateMembers registers the organization accounts as Security Hub members.
// Executes in: delegated administrator account in all regions.
func (s *SecurityHub) CreateMembers(ctx context.Context, accounts []shared.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	details := make([]securityHubTypes.AccountDetails, 0, len(accounts))
	for _, account := range accounts {
		details = append(details, securityHubTypes.AccountDetails{
			AccountId: aws.String(account.ID),
			Email:     aws.String(account.Email),
		})
	}

	output, err := s.client.CreateMembers(ctx, &securityhub.CreateMembersInput{
		AccountDetails: details,
	})
	if err != nil {
		log.Printf("[%s] unable to create SecurityHub members : [%v]", s.region, err)
		return err
	}
	if len(output.UnprocessedAccounts) > 0 {
		log.Printf("[%s] [%d] SecurityHub member accounts were not processed", s.region, len(output.UnprocessedAccounts))
	}
	return nil
}

// CreateFindingAggregator aggregates findings from all regions into this
// region when no aggregator exists yet. Executes in: delegated administrator
// account in the primary region.
func (s *SecurityHub) CreateFindingAggregator(ctx context.Context) error {
	existing, err := s.client.ListFindingAggregators(ctx, &securityhub.ListFindingAggregatorsInput{})
	if err != nil {
		log.Printf("[%s] unable to list SecurityHub finding aggregators : [%v]", s.region, err)
		return err
	}
	if len(existing.FindingAggregators) > 0 {
		log.Printf("[%s] SecurityHub finding aggregator already exists", s.region)
		return nil
	}

	log.Printf("[%s] creating SecurityHub finding aggregator", s.region)
	_, err = s.client.CreateFindingAggregator(ctx, &securityhub.CreateFindingAggregatorInput{
		RegionLinkingMode: aws.String("ALL_REGIONS"),
	})
	if err := apierr.Ignore(err, "ResourceConflictException"); err != nil {
		log.Printf("[%s] unable to create SecurityHub finding aggregator : [%v]", s.region, err)
		return err
	}
	return nil
}

// DisableStandards disables every enabled Security Hub standard in the
// account and returns how many were disabled.
func (s *SecurityHub) DisableStandards(ctx context.Context, accountID string) (int, error) {
	subscriptionArns := make([]string, 0)
	paginator := securityhub.NewGetEnabledStandardsPaginator(s.client, &securityhub.GetEnabledStandardsInput{
		MaxResults: aws.Int32(100),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			log.Printf("[%s] unable to get enabled standards for account [%s] : [%v]", s.region, accountID, err)
			return 0, err
		}
		for _, standard := range page.StandardsSubscriptions {
			subscriptionArns = append(subscriptionArns, aws.ToString(standard.StandardsSubscriptionArn))
		}
	}

	if len(subscriptionArns) == 0 {
		log.Printf("[%s] no enabled SecurityHub standards found in account [%s]", s.region, accountID)
		return 0, nil
	}

	_, err := s.client.BatchDisableStandards(ctx, &securityhub.BatchDisableStandardsInput{
		StandardsSubscriptionArns: subscriptionArns,
	})
	if err != nil {
		log.Printf("[%s] unable to disable standards in account [%s] : [%v]", s.region, accountID, err)
		return 0, err
	}
	log.Printf("[%s] disabled [%d] standards in account [%s]", s.region, len(subscriptionArns), accountID)
	return len(subscriptionArns), nil
}
