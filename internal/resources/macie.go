package resources

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/macie2"
	macieTypes "github.com/aws/aws-sdk-go-v2/service/macie2/types"
	"github.com/outofoffice3/org-setup/internal/apierr"
	"github.com/outofoffice3/org-setup/internal/shared"
)

// MacieAPI is the subset of the Macie client used here.
type MacieAPI interface {
	EnableMacie(ctx context.Context, params *macie2.EnableMacieInput, optFns ...func(*macie2.Options)) (*macie2.EnableMacieOutput, error)
	EnableOrganizationAdminAccount(ctx context.Context, params *macie2.EnableOrganizationAdminAccountInput, optFns ...func(*macie2.Options)) (*macie2.EnableOrganizationAdminAccountOutput, error)
	UpdateOrganizationConfiguration(ctx context.Context, params *macie2.UpdateOrganizationConfigurationInput, optFns ...func(*macie2.Options)) (*macie2.UpdateOrganizationConfigurationOutput, error)
	CreateMember(ctx context.Context, params *macie2.CreateMemberInput, optFns ...func(*macie2.Options)) (*macie2.CreateMemberOutput, error)
}

// Macie wraps the AWS Macie API.
type Macie struct {
	client MacieAPI
	region string
}

func NewMacie(client MacieAPI, region string) *Macie {
	return &Macie{
		client: client,
		region: region,
	}
}

// EnableMacie enables Macie in the account. Executes in: management and
// delegated administrator accounts in all regions.
func (m *Macie) EnableMacie(ctx context.Context) error {
	log.Printf("[%s] enabling Macie", m.region)
	_, err := m.client.EnableMacie(ctx, &macie2.EnableMacieInput{
		FindingPublishingFrequency: macieTypes.FindingPublishingFrequencyFifteenMinutes,
		Status:                     macieTypes.MacieStatusEnabled,
	})
	if err := apierr.Ignore(err, "ConflictException"); err != nil {
		log.Printf("[%s] unable to enable Macie : [%v]", m.region, err)
		return err
	}
	return nil
}

// EnableOrganizationAdminAccount delegates Macie administration to an
// account. Executes in: management account in all regions.
func (m *Macie) EnableOrganizationAdminAccount(ctx context.Context, accountID string) error {
	log.Printf("[%s] delegating Macie administration to account [%s]", m.region, accountID)
	_, err := m.client.EnableOrganizationAdminAccount(ctx, &macie2.EnableOrganizationAdminAccountInput{
		AdminAccountId: aws.String(accountID),
	})
	if err := apierr.Ignore(err, "ConflictException"); err != nil {
		log.Printf("[%s] unable to delegate Macie administration to account [%s] : [%v]", m.region, accountID, err)
		return err
	}
	return nil
}

// UpdateOrganizationConfiguration auto-enrolls new organization accounts in
// Macie. Executes in: delegated administrator account in all regions.
func (m *Macie) UpdateOrganizationConfiguration(ctx context.Context) error {
	_, err := m.client.UpdateOrganizationConfiguration(ctx, &macie2.UpdateOrganizationConfigurationInput{
		AutoEnable: aws.Bool(true),
	})
	if err != nil {
		log.Printf("[%s] unable to update Macie organization configuration : [%v]", m.region, err)
		return err
	}
	log.Printf("[%s] updated Macie to auto-enroll new accounts", m.region)
	return nil
}

// CreateMembers registers the organization accounts as Macie members.
// Executes in: delegated administrator account in all regions.
func (m *Macie) CreateMembers(ctx context.Context, accounts []shared.Account) error {
	for _, account := range accounts {
		_, err := m.client.CreateMember(ctx, &macie2.CreateMemberInput{
			Account: &macieTypes.AccountDetail{
				AccountId: aws.String(account.ID),
				Email:     aws.String(account.Email),
			},
		})
		if err := apierr.Ignore(err, "ValidationException"); err != nil {
			log.Printf("[%s] unable to create Macie member [%s] : [%v]", m.region, account.ID, err)
			return err
		}
	}
	return nil
}
