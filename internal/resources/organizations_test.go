package resources

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	organizationTypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	"github.com/aws/smithy-go"
	"github.com/outofoffice3/org-setup/internal/shared"
	"github.com/stretchr/testify/assert"
)

type mockOrganizationsAPI struct {
	describeOrganizationFn           func(params *organizations.DescribeOrganizationInput) (*organizations.DescribeOrganizationOutput, error)
	listAccountsFn                   func(params *organizations.ListAccountsInput) (*organizations.ListAccountsOutput, error)
	listRootsFn                      func(params *organizations.ListRootsInput) (*organizations.ListRootsOutput, error)
	listPoliciesFn                   func(params *organizations.ListPoliciesInput) (*organizations.ListPoliciesOutput, error)
	enableAllFeaturesFn              func(params *organizations.EnableAllFeaturesInput) (*organizations.EnableAllFeaturesOutput, error)
	enableAWSServiceAccessFn         func(params *organizations.EnableAWSServiceAccessInput) (*organizations.EnableAWSServiceAccessOutput, error)
	enablePolicyTypeFn               func(params *organizations.EnablePolicyTypeInput) (*organizations.EnablePolicyTypeOutput, error)
	createPolicyFn                   func(params *organizations.CreatePolicyInput) (*organizations.CreatePolicyOutput, error)
	attachPolicyFn                   func(params *organizations.AttachPolicyInput) (*organizations.AttachPolicyOutput, error)
	registerDelegatedAdministratorFn func(params *organizations.RegisterDelegatedAdministratorInput) (*organizations.RegisterDelegatedAdministratorOutput, error)
}

func (m *mockOrganizationsAPI) DescribeOrganization(ctx context.Context, params *organizations.DescribeOrganizationInput, optFns ...func(*organizations.Options)) (*organizations.DescribeOrganizationOutput, error) {
	if m.describeOrganizationFn != nil {
		return m.describeOrganizationFn(params)
	}
	return &organizations.DescribeOrganizationOutput{Organization: &organizationTypes.Organization{Id: aws.String("o-abcdef1234")}}, nil
}

func (m *mockOrganizationsAPI) ListAccounts(ctx context.Context, params *organizations.ListAccountsInput, optFns ...func(*organizations.Options)) (*organizations.ListAccountsOutput, error) {
	if m.listAccountsFn != nil {
		return m.listAccountsFn(params)
	}
	return &organizations.ListAccountsOutput{}, nil
}

func (m *mockOrganizationsAPI) ListRoots(ctx context.Context, params *organizations.ListRootsInput, optFns ...func(*organizations.Options)) (*organizations.ListRootsOutput, error) {
	if m.listRootsFn != nil {
		return m.listRootsFn(params)
	}
	return &organizations.ListRootsOutput{}, nil
}

func (m *mockOrganizationsAPI) ListPolicies(ctx context.Context, params *organizations.ListPoliciesInput, optFns ...func(*organizations.Options)) (*organizations.ListPoliciesOutput, error) {
	if m.listPoliciesFn != nil {
		return m.listPoliciesFn(params)
	}
	return &organizations.ListPoliciesOutput{}, nil
}

func (m *mockOrganizationsAPI) EnableAllFeatures(ctx context.Context, params *organizations.EnableAllFeaturesInput, optFns ...func(*organizations.Options)) (*organizations.EnableAllFeaturesOutput, error) {
	if m.enableAllFeaturesFn != nil {
		return m.enableAllFeaturesFn(params)
	}
	return &organizations.EnableAllFeaturesOutput{}, nil
}

func (m *mockOrganizationsAPI) EnableAWSServiceAccess(ctx context.Context, params *organizations.EnableAWSServiceAccessInput, optFns ...func(*organizations.Options)) (*organizations.EnableAWSServiceAccessOutput, error) {
	if m.enableAWSServiceAccessFn != nil {
		return m.enableAWSServiceAccessFn(params)
	}
	return &organizations.EnableAWSServiceAccessOutput{}, nil
}

func (m *mockOrganizationsAPI) EnablePolicyType(ctx context.Context, params *organizations.EnablePolicyTypeInput, optFns ...func(*organizations.Options)) (*organizations.EnablePolicyTypeOutput, error) {
	if m.enablePolicyTypeFn != nil {
		return m.enablePolicyTypeFn(params)
	}
	return &organizations.EnablePolicyTypeOutput{}, nil
}

func (m *mockOrganizationsAPI) CreatePolicy(ctx context.Context, params *organizations.CreatePolicyInput, optFns ...func(*organizations.Options)) (*organizations.CreatePolicyOutput, error) {
	if m.createPolicyFn != nil {
		return m.createPolicyFn(params)
	}
	return &organizations.CreatePolicyOutput{}, nil
}

func (m *mockOrganizationsAPI) AttachPolicy(ctx context.Context, params *organizations.AttachPolicyInput, optFns ...func(*organizations.Options)) (*organizations.AttachPolicyOutput, error) {
	if m.attachPolicyFn != nil {
		return m.attachPolicyFn(params)
	}
	return &organizations.AttachPolicyOutput{}, nil
}

func (m *mockOrganizationsAPI) RegisterDelegatedAdministrator(ctx context.Context, params *organizations.RegisterDelegatedAdministratorInput, optFns ...func(*organizations.Options)) (*organizations.RegisterDelegatedAdministratorOutput, error) {
	if m.registerDelegatedAdministratorFn != nil {
		return m.registerDelegatedAdministratorFn(params)
	}
	return &organizations.RegisterDelegatedAdministratorOutput{}, nil
}

func TestDescribeOrganizationNotInUse(t *testing.T) {
	assertion := assert.New(t)

	org := NewOrganizations(&mockOrganizationsAPI{
		describeOrganizationFn: func(params *organizations.DescribeOrganizationInput) (*organizations.DescribeOrganizationOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "AWSOrganizationsNotInUseException", Message: "no organization"}
		},
	})
	_, err := org.DescribeOrganization(context.Background())
	assertion.ErrorIs(err, ErrOrganizationNotFound)
}

func TestListAccountsMemoizedAndFiltered(t *testing.T) {
	assertion := assert.New(t)

	calls := 0
	org := NewOrganizations(&mockOrganizationsAPI{
		listAccountsFn: func(params *organizations.ListAccountsInput) (*organizations.ListAccountsOutput, error) {
			calls++
			return &organizations.ListAccountsOutput{
				Accounts: []organizationTypes.Account{
					{Id: aws.String("111111111111"), Name: aws.String("Management"), Status: organizationTypes.AccountStatusActive},
					{Id: aws.String("222222222222"), Name: aws.String("Audit"), Status: organizationTypes.AccountStatusActive},
					{Id: aws.String("333333333333"), Name: aws.String("Closed"), Status: organizationTypes.AccountStatusSuspended},
				},
			}, nil
		},
	})

	accounts, err := org.ListAccounts(context.Background())
	assertion.NoError(err)
	assertion.Len(accounts, 2)

	// second call served from memory
	accounts, err = org.ListAccounts(context.Background())
	assertion.NoError(err)
	assertion.Len(accounts, 2)
	assertion.Equal(1, calls)
}

func TestEnableAllFeaturesIdempotent(t *testing.T) {
	assertion := assert.New(t)

	org := NewOrganizations(&mockOrganizationsAPI{
		enableAllFeaturesFn: func(params *organizations.EnableAllFeaturesInput) (*organizations.EnableAllFeaturesOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "HandshakeConstraintViolationException", Message: "already enabled"}
		},
	})
	assertion.NoError(org.EnableAllFeatures(context.Background()))

	org = NewOrganizations(&mockOrganizationsAPI{
		enableAllFeaturesFn: func(params *organizations.EnableAllFeaturesInput) (*organizations.EnableAllFeaturesOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not authorized"}
		},
	})
	assertion.Error(org.EnableAllFeatures(context.Background()))
}

func TestEnableAllPolicyTypesSkipsEnabled(t *testing.T) {
	assertion := assert.New(t)

	var enabled []organizationTypes.PolicyType
	org := NewOrganizations(&mockOrganizationsAPI{
		listRootsFn: func(params *organizations.ListRootsInput) (*organizations.ListRootsOutput, error) {
			return &organizations.ListRootsOutput{
				Roots: []organizationTypes.Root{
					{
						Id: aws.String("r-root1"),
						PolicyTypes: []organizationTypes.PolicyTypeSummary{
							{Type: organizationTypes.PolicyTypeServiceControlPolicy, Status: organizationTypes.PolicyTypeStatusEnabled},
							{Type: organizationTypes.PolicyTypeTagPolicy, Status: organizationTypes.PolicyTypeStatusPendingEnable},
							{Type: organizationTypes.PolicyTypeAiservicesOptOutPolicy, Status: organizationTypes.PolicyTypeStatusPendingDisable},
						},
					},
				},
			}, nil
		},
		enablePolicyTypeFn: func(params *organizations.EnablePolicyTypeInput) (*organizations.EnablePolicyTypeOutput, error) {
			enabled = append(enabled, params.PolicyType)
			return &organizations.EnablePolicyTypeOutput{}, nil
		},
	})

	assertion.NoError(org.EnableAllPolicyTypes(context.Background()))
	assertion.Equal([]organizationTypes.PolicyType{
		organizationTypes.PolicyTypeTagPolicy,
		organizationTypes.PolicyTypeAiservicesOptOutPolicy,
	}, enabled)
}

func TestAIOptOutPolicyIDFindsExisting(t *testing.T) {
	assertion := assert.New(t)

	created := 0
	org := NewOrganizations(&mockOrganizationsAPI{
		listPoliciesFn: func(params *organizations.ListPoliciesInput) (*organizations.ListPoliciesOutput, error) {
			return &organizations.ListPoliciesOutput{
				Policies: []organizationTypes.PolicySummary{
					{Id: aws.String("p-ai1"), Name: aws.String(shared.AIOptOutPolicyName)},
				},
			}, nil
		},
		createPolicyFn: func(params *organizations.CreatePolicyInput) (*organizations.CreatePolicyOutput, error) {
			created++
			return &organizations.CreatePolicyOutput{}, nil
		},
	})

	policyID, err := org.AIOptOutPolicyID(context.Background())
	assertion.NoError(err)
	assertion.Equal("p-ai1", policyID)
	assertion.Equal(0, created)
}

func TestAIOptOutPolicyIDCreatesWhenMissing(t *testing.T) {
	assertion := assert.New(t)

	org := NewOrganizations(&mockOrganizationsAPI{
		createPolicyFn: func(params *organizations.CreatePolicyInput) (*organizations.CreatePolicyOutput, error) {
			assertion.Equal(shared.AIOptOutPolicyName, aws.ToString(params.Name))
			assertion.Equal(organizationTypes.PolicyTypeAiservicesOptOutPolicy, params.Type)
			return &organizations.CreatePolicyOutput{
				Policy: &organizationTypes.Policy{
					PolicySummary: &organizationTypes.PolicySummary{Id: aws.String("p-ai2")},
				},
			}, nil
		},
	})

	policyID, err := org.AIOptOutPolicyID(context.Background())
	assertion.NoError(err)
	assertion.Equal("p-ai2", policyID)
}

func TestAIOptOutPolicyIDDuplicateRelists(t *testing.T) {
	assertion := assert.New(t)

	listCalls := 0
	org := NewOrganizations(&mockOrganizationsAPI{
		listPoliciesFn: func(params *organizations.ListPoliciesInput) (*organizations.ListPoliciesOutput, error) {
			listCalls++
			if listCalls == 1 {
				// policy created by a concurrent invocation after this list
				return &organizations.ListPoliciesOutput{}, nil
			}
			return &organizations.ListPoliciesOutput{
				Policies: []organizationTypes.PolicySummary{
					{Id: aws.String("p-ai3"), Name: aws.String(shared.AIOptOutPolicyName)},
				},
			}, nil
		},
		createPolicyFn: func(params *organizations.CreatePolicyInput) (*organizations.CreatePolicyOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "DuplicatePolicyException", Message: "already exists"}
		},
	})

	policyID, err := org.AIOptOutPolicyID(context.Background())
	assertion.NoError(err)
	assertion.Equal("p-ai3", policyID)
	assertion.Equal(2, listCalls)
}

func TestRegisterDelegatedAdministratorsIgnoresRegistered(t *testing.T) {
	assertion := assert.New(t)

	calls := 0
	org := NewOrganizations(&mockOrganizationsAPI{
		registerDelegatedAdministratorFn: func(params *organizations.RegisterDelegatedAdministratorInput) (*organizations.RegisterDelegatedAdministratorOutput, error) {
			calls++
			return nil, &smithy.GenericAPIError{Code: "AccountAlreadyRegisteredException", Message: "already registered"}
		},
	})

	assertion.NoError(org.RegisterDelegatedAdministrators(context.Background(), "222222222222", shared.DelegatedAdministratorPrincipals))
	assertion.Equal(len(shared.DelegatedAdministratorPrincipals), calls)
}

func TestAccountIDByName(t *testing.T) {
	assertion := assert.New(t)

	org := NewOrganizations(&mockOrganizationsAPI{
		listAccountsFn: func(params *organizations.ListAccountsInput) (*organizations.ListAccountsOutput, error) {
			return &organizations.ListAccountsOutput{
				Accounts: []organizationTypes.Account{
					{Id: aws.String("222222222222"), Name: aws.String("Audit"), Status: organizationTypes.AccountStatusActive},
				},
			}, nil
		},
	})

	accountID, err := org.AccountID(context.Background(), "Audit")
	assertion.NoError(err)
	assertion.Equal("222222222222", accountID)

	_, err = org.AccountID(context.Background(), "LogArchive")
	assertion.ErrorIs(err, ErrAdministratorNotFound)
}
