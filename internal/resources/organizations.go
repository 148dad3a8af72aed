package resources

import (
	"context"
	"errors"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	organizationTypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	"github.com/outofoffice3/org-setup/internal/apierr"
	"github.com/outofoffice3/org-setup/internal/shared"
)

var (
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrAdministratorNotFound = errors.New("administrator account not found")
)

// OrganizationsAPI is the subset of the Organizations client used here.
type OrganizationsAPI interface {
	DescribeOrganization(ctx context.Context, params *organizations.DescribeOrganizationInput, optFns ...func(*organizations.Options)) (*organizations.DescribeOrganizationOutput, error)
	ListAccounts(ctx context.Context, params *organizations.ListAccountsInput, optFns ...func(*organizations.Options)) (*organizations.ListAccountsOutput, error)
	ListRoots(ctx context.Context, params *organizations.ListRootsInput, optFns ...func(*organizations.Options)) (*organizations.ListRootsOutput, error)
	ListPolicies(ctx context.Context, params *organizations.ListPoliciesInput, optFns ...func(*organizations.Options)) (*organizations.ListPoliciesOutput, error)
	EnableAllFeatures(ctx context.Context, params *organizations.EnableAllFeaturesInput, optFns ...func(*organizations.Options)) (*organizations.EnableAllFeaturesOutput, error)
	EnableAWSServiceAccess(ctx context.Context, params *organizations.EnableAWSServiceAccessInput, optFns ...func(*organizations.Options)) (*organizations.EnableAWSServiceAccessOutput, error)
	EnablePolicyType(ctx context.Context, params *organizations.EnablePolicyTypeInput, optFns ...func(*organizations.Options)) (*organizations.EnablePolicyTypeOutput, error)
	CreatePolicy(ctx context.Context, params *organizations.CreatePolicyInput, optFns ...func(*organizations.Options)) (*organizations.CreatePolicyOutput, error)
	AttachPolicy(ctx context.Context, params *organizations.AttachPolicyInput, optFns ...func(*organizations.Options)) (*organizations.AttachPolicyOutput, error)
	RegisterDelegatedAdministrator(ctx context.Context, params *organizations.RegisterDelegatedAdministratorInput, optFns ...func(*organizations.Options)) (*organizations.RegisterDelegatedAdministratorOutput, error)
}

// Organizations wraps the AWS Organizations API. The Organizations endpoint
// only exists in us-east-1, so the client must be pinned there.
type Organizations struct {
	client   OrganizationsAPI
	region   string
	accounts []organizationTypes.Account
	roots    []organizationTypes.Root
}

func NewOrganizations(client OrganizationsAPI) *Organizations {
	return &Organizations{
		client: client,
		region: "us-east-1",
	}
}

// DescribeOrganization describes the organization the account belongs to.
func (o *Organizations) DescribeOrganization(ctx context.Context) (*organizationTypes.Organization, error) {
	output, err := o.client.DescribeOrganization(ctx, &organizations.DescribeOrganizationInput{})
	if err != nil {
		if apierr.Is(err, "AWSOrganizationsNotInUseException") {
			return nil, ErrOrganizationNotFound
		}
		log.Printf("[%s] unable to describe organization : [%v]", o.region, err)
		return nil, err
	}
	return output.Organization, nil
}

// ListAccounts lists the ACTIVE accounts in the organization. The result is
// memoized for the duration of the invocation.
func (o *Organizations) ListAccounts(ctx context.Context) ([]organizationTypes.Account, error) {
	if o.accounts != nil {
		return o.accounts, nil
	}

	accounts := make([]organizationTypes.Account, 0)
	paginator := organizations.NewListAccountsPaginator(o.client, &organizations.ListAccountsInput{
		MaxResults: aws.Int32(20),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			log.Printf("[%s] unable to list accounts : [%v]", o.region, err)
			return nil, err
		}
		for _, account := range page.Accounts {
			if account.Status != organizationTypes.AccountStatusActive {
				continue
			}
			accounts = append(accounts, account)
		}
	}
	o.accounts = accounts
	return accounts, nil
}

// ListRoots lists the roots of the organization, memoized.
func (o *Organizations) ListRoots(ctx context.Context) ([]organizationTypes.Root, error) {
	if o.roots != nil {
		return o.roots, nil
	}

	roots := make([]organizationTypes.Root, 0)
	paginator := organizations.NewListRootsPaginator(o.client, &organizations.ListRootsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			log.Printf("[%s] unable to list roots : [%v]", o.region, err)
			return nil, err
		}
		roots = append(roots, page.Roots...)
	}
	o.roots = roots
	return roots, nil
}

// ListPolicies lists all organization policies of the given type.
func (o *Organizations) ListPolicies(ctx context.Context, policyType organizationTypes.PolicyType) ([]organizationTypes.PolicySummary, error) {
	policies := make([]organizationTypes.PolicySummary, 0)
	paginator := organizations.NewListPoliciesPaginator(o.client, &organizations.ListPoliciesInput{
		Filter: policyType,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			log.Printf("[%s] unable to list policies : [%v]", o.region, err)
			return nil, err
		}
		policies = append(policies, page.Policies...)
	}
	return policies, nil
}

// EnableAllFeatures enables all features in the organization. Organizations
// already running with all features respond with a handshake constraint
// violation, which is treated as success.
func (o *Organizations) EnableAllFeatures(ctx context.Context) error {
	log.Printf("[%s] enabling all features in the organization", o.region)
	_, err := o.client.EnableAllFeatures(ctx, &organizations.EnableAllFeaturesInput{})
	if err := apierr.Ignore(err, "HandshakeConstraintViolationException"); err != nil {
		log.Printf("[%s] unable to enable all features in organization : [%v]", o.region, err)
		return err
	}
	return nil
}

// EnableAWSServiceAccess grants each service principal access to the
// organization.
func (o *Organizations) EnableAWSServiceAccess(ctx context.Context, principals []string) error {
	for _, principal := range principals {
		log.Printf("[%s] enabling AWS service access for [%s]", o.region, principal)
		_, err := o.client.EnableAWSServiceAccess(ctx, &organizations.EnableAWSServiceAccessInput{
			ServicePrincipal: aws.String(principal),
		})
		if err := apierr.Ignore(err, "ServiceException"); err != nil {
			log.Printf("[%s] unable to enable AWS service access for [%s] : [%v]", o.region, principal, err)
			return err
		}
	}
	return nil
}

// EnableAllPolicyTypes enables every disabled policy type on every root.
func (o *Organizations) EnableAllPolicyTypes(ctx context.Context) error {
	roots, err := o.ListRoots(ctx)
	if err != nil {
		return err
	}

	for _, root := range roots {
		rootID := aws.ToString(root.Id)
		for _, policyType := range root.PolicyTypes {
			if policyType.Status == organizationTypes.PolicyTypeStatusEnabled {
				continue
			}
			log.Printf("[%s] enabling policy type [%s] on root [%s]", o.region, policyType.Type, rootID)
			_, err := o.client.EnablePolicyType(ctx, &organizations.EnablePolicyTypeInput{
				RootId:     root.Id,
				PolicyType: policyType.Type,
			})
			if err := apierr.Ignore(err, "PolicyTypeAlreadyEnabledException"); err != nil {
				log.Printf("[%s] unable to enable policy type [%s] : [%v]", o.region, policyType.Type, err)
				return err
			}
		}
	}
	return nil
}

// AIOptOutPolicyID returns the id of the AI services opt-out policy, creating
// the policy when it does not exist yet.
func (o *Organizations) AIOptOutPolicyID(ctx context.Context) (string, error) {
	policies, err := o.ListPolicies(ctx, organizationTypes.PolicyTypeAiservicesOptOutPolicy)
	if err != nil {
		return "", err
	}
	for _, policy := range policies {
		if aws.ToString(policy.Name) == shared.AIOptOutPolicyName {
			log.Printf("[%s] found existing [%s] policy", o.region, shared.AIOptOutPolicyName)
			return aws.ToString(policy.Id), nil
		}
	}

	log.Printf("[%s] [%s] policy not found, creating", o.region, shared.AIOptOutPolicyName)
	output, err := o.client.CreatePolicy(ctx, &organizations.CreatePolicyInput{
		Content:     aws.String(shared.AIOptOutPolicy),
		Description: aws.String("Opt-out of all AI services"),
		Name:        aws.String(shared.AIOptOutPolicyName),
		Type:        organizationTypes.PolicyTypeAiservicesOptOutPolicy,
	})
	if err != nil {
		// lost a race with a concurrent invocation, look the policy up again
		if apierr.Is(err, "DuplicatePolicyException") {
			return o.AIOptOutPolicyID(ctx)
		}
		log.Printf("[%s] unable to create [%s] policy : [%v]", o.region, shared.AIOptOutPolicyName, err)
		return "", err
	}
	return aws.ToString(output.Policy.PolicySummary.Id), nil
}

// AttachAIOptOutPolicy attaches the AI services opt-out policy to every root.
func (o *Organizations) AttachAIOptOutPolicy(ctx context.Context) error {
	policyID, err := o.AIOptOutPolicyID(ctx)
	if err != nil {
		return err
	}

	roots, err := o.ListRoots(ctx)
	if err != nil {
		return err
	}
	for _, root := range roots {
		rootID := aws.ToString(root.Id)
		log.Printf("[%s] attaching [%s] (%s) to root [%s]", o.region, shared.AIOptOutPolicyName, policyID, rootID)
		_, err := o.client.AttachPolicy(ctx, &organizations.AttachPolicyInput{
			PolicyId: aws.String(policyID),
			TargetId: root.Id,
		})
		if err := apierr.Ignore(err, "DuplicatePolicyAttachmentException"); err != nil {
			log.Printf("[%s] unable to attach policy : [%v]", o.region, err)
			return err
		}
	}
	return nil
}

// RegisterDelegatedAdministrators registers the account as the delegated
// administrator for each service principal.
func (o *Organizations) RegisterDelegatedAdministrators(ctx context.Context, accountID string, principals []string) error {
	for _, principal := range principals {
		log.Printf("[%s] delegating [%s] administration to account [%s]", o.region, principal, accountID)
		_, err := o.client.RegisterDelegatedAdministrator(ctx, &organizations.RegisterDelegatedAdministratorInput{
			AccountId:        aws.String(accountID),
			ServicePrincipal: aws.String(principal),
		})
		if err := apierr.Ignore(err, "AccountAlreadyRegisteredException"); err != nil {
			log.Printf("[%s] unable to delegate [%s] administration to account [%s] : [%v]", o.region, principal, accountID, err)
			return err
		}
	}
	return nil
}

// AccountID resolves an account id by account name.
func (o *Organizations) AccountID(ctx context.Context, name string) (string, error) {
	accounts, err := o.ListAccounts(ctx)
	if err != nil {
		return "", err
	}
	for _, account := range accounts {
		if aws.ToString(account.Name) == name {
			return aws.ToString(account.Id), nil
		}
	}
	return "", ErrAdministratorNotFound
}
