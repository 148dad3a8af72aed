package orgsetup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/org-setup/internal/awsclientmgr"
	"github.com/outofoffice3/org-setup/internal/errormgr"
	"github.com/outofoffice3/org-setup/internal/exporter"
	"github.com/outofoffice3/org-setup/internal/metricmgr"
	"github.com/outofoffice3/org-setup/internal/resources"
	"github.com/outofoffice3/org-setup/internal/shared"
	"github.com/outofoffice3/org-setup/internal/workerpool"
)

type OrganizationSetup interface {
	// enable the security services across every account and region
	SetupOrganization(ctx context.Context) error
	// disable security hub standards across every account and region
	DisableSecurityHub(ctx context.Context) error
	// set administrator account id
	SetAdminAccountID(accountID string)
	// set primary region
	SetPrimaryRegion(region string)
	// get logger
	GetLogger() logger.Logger
}

type _OrganizationSetup struct {
	awsClientMgr   awsclientmgr.AWSClientMgr // aws sdk clients
	exporter       exporter.Exporter         // setup report
	metricMgr      metricmgr.MetricMgr       // metrics
	org            *resources.Organizations  // organizations wrapper, memoizes list calls
	config         shared.Config             // configuration
	adminAccountID string                    // delegated administrator account id
	logger         logger.Logger             // logger
}

type OrganizationSetupInitConfig struct {
	AwsClientMgr awsclientmgr.AWSClientMgr
	Config       shared.Config
	Logger       logger.Logger
}

func Init(config OrganizationSetupInitConfig) (OrganizationSetup, error) {
	if config.AwsClientMgr == nil {
		return nil, errors.New("aws client mgr not set")
	}
	sos := config.Logger
	if sos == nil {
		sos = logger.NewConsoleLogger(logger.LogLevelInfo)
	}

	accountID := config.AwsClientMgr.AccountID()
	orgClient, _ := config.AwsClientMgr.GetSDKClient(accountID, "us-east-1", awsclientmgr.Organizations)
	s3Client, _ := config.AwsClientMgr.GetSDKClient(accountID, config.Config.PrimaryRegion, awsclientmgr.S3)
	reportExporter, err := exporter.Init(s3Client.(exporter.S3API), sos)
	if err != nil {
		return nil, err
	}

	sos.Infof("init organization setup for management account [%s]", accountID)
	return &_OrganizationSetup{
		awsClientMgr: config.AwsClientMgr,
		exporter:     reportExporter,
		metricMgr:    metricmgr.Init(),
		org:          resources.NewOrganizations(orgClient.(resources.OrganizationsAPI)),
		config:       config.Config,
		logger:       sos,
	}, nil
}

// set administrator account id
func (o *_OrganizationSetup) SetAdminAccountID(accountID string) {
	o.adminAccountID = accountID
}

// set primary region
func (o *_OrganizationSetup) SetPrimaryRegion(region string) {
	o.config.PrimaryRegion = region
}

// get logger
func (o *_OrganizationSetup) GetLogger() logger.Logger {
	return o.logger
}

// SetupOrganization enables the organization security services. Organization
// level calls run first, then every target region is configured on a bounded
// worker pool. Region failures are collected and joined into the returned
// error; they never stop the other regions.
func (o *_OrganizationSetup) SetupOrganization(ctx context.Context) error {
	sos := o.GetLogger()
	managementAccountID := o.awsClientMgr.AccountID()

	organization, err := o.org.DescribeOrganization(ctx)
	if err != nil {
		return err
	}
	sos.Infof("configuring organization [%s]", aws.ToString(organization.Id))

	// resolve target regions
	regions := o.config.Regions
	if len(regions) == 0 {
		regions, err = o.ec2(managementAccountID, o.config.PrimaryRegion).AllRegions(ctx)
		if err != nil {
			return err
		}
	}
	o.metricMgr.IncrementMetric(metricmgr.TotalRegions, int32(len(regions)))
	sos.Infof("configuring [%d] regions", len(regions))

	// organization level calls, abort on first failure
	if err := o.step(managementAccountID, "us-east-1", "Organizations", "EnableAllFeatures",
		o.org.EnableAllFeatures(ctx)); err != nil {
		return err
	}
	if err := o.step(managementAccountID, "us-east-1", "Organizations", "EnableAllPolicyTypes",
		o.org.EnableAllPolicyTypes(ctx)); err != nil {
		return err
	}
	if o.config.EnableAIOptOutPolicy {
		if err := o.step(managementAccountID, "us-east-1", "Organizations", "AttachAIOptOutPolicy",
			o.org.AttachAIOptOutPolicy(ctx)); err != nil {
			return err
		}
	}
	if err := o.step(managementAccountID, "us-east-1", "Organizations", "EnableAWSServiceAccess",
		o.org.EnableAWSServiceAccess(ctx, shared.ServiceAccessPrincipals)); err != nil {
		return err
	}

	// resolve administrator account when the event did not supply one
	adminAccountID := o.adminAccountID
	if adminAccountID == "" {
		adminAccountID, err = o.org.AccountID(ctx, o.config.AdminAccountName)
		if err != nil {
			return err
		}
	}
	sos.Infof("delegating administration to account [%s]", adminAccountID)

	if err := o.step(managementAccountID, "us-east-1", "Organizations", "RegisterDelegatedAdministrators",
		o.org.RegisterDelegatedAdministrators(ctx, adminAccountID, shared.DelegatedAdministratorPrincipals)); err != nil {
		return err
	}
	o.metricMgr.IncrementMetric(metricmgr.TotalDelegations, int32(len(shared.DelegatedAdministratorPrincipals)))

	// member list for the per region calls
	orgAccounts, err := o.org.ListAccounts(ctx)
	if err != nil {
		return err
	}
	accounts := make([]shared.Account, 0, len(orgAccounts))
	for _, account := range orgAccounts {
		accounts = append(accounts, shared.Account{
			ID:    aws.ToString(account.Id),
			Name:  aws.ToString(account.Name),
			Email: aws.ToString(account.Email),
		})
	}
	o.metricMgr.IncrementMetric(metricmgr.TotalAccounts, int32(len(accounts)))

	// fan out over regions
	errChan := make(chan error, 1)
	errMgr := errormgr.NewErrorMgr()
	done := make(chan struct{})
	go func() {
		errMgr.ListenForErrors(errChan)
		close(done)
	}()

	pool := workerpool.New(maxConcurrentRegions, errChan)
	for _, region := range regions {
		region := region
		pool.Submit(region, func() error {
			return o.setupRegion(ctx, adminAccountID, region, accounts)
		})
	}
	pool.Wait()
	close(errChan)
	<-done

	// aggregate findings from all regions into the primary region
	aggErr := o.step(adminAccountID, o.config.PrimaryRegion, "SecurityHub", "CreateFindingAggregator",
		o.securityHub(adminAccountID, o.config.PrimaryRegion).CreateFindingAggregator(ctx))

	if err := o.exportReport(ctx); err != nil {
		sos.Errorf("unable to export setup report : [%s]", err)
	}

	collected := errMgr.GetErrors()
	if aggErr != nil {
		collected = append(collected, aggErr)
	}
	if len(collected) > 0 {
		sos.Errorf("organization setup finished with [%d] errors", len(collected))
		return errors.Join(collected...)
	}
	sos.Infof("organization setup finished")
	return nil
}

// setupRegion configures every security service in one region. The first
// failed call aborts the rest of the region; other regions are unaffected.
func (o *_OrganizationSetup) setupRegion(ctx context.Context, adminAccountID string, region string, accounts []shared.Account) error {
	managementAccountID := o.awsClientMgr.AccountID()

	if err := o.step(managementAccountID, region, "ServiceCatalog", "EnableAWSOrganizationsAccess",
		o.serviceCatalog(managementAccountID, region).EnableAWSOrganizationsAccess(ctx)); err != nil {
		return err
	}
	if err := o.step(managementAccountID, region, "CloudFormation", "ActivateOrganizationsAccess",
		o.cloudFormation(managementAccountID, region).ActivateOrganizationsAccess(ctx)); err != nil {
		return err
	}
	if err := o.step(managementAccountID, region, "RAM", "EnableSharingWithAwsOrganization",
		o.ram(managementAccountID, region).EnableSharingWithAwsOrganization(ctx)); err != nil {
		return err
	}

	// security hub, delegated admin enrolls the members
	if err := o.step(managementAccountID, region, "SecurityHub", "EnableOrganizationAdminAccount",
		o.securityHub(managementAccountID, region).EnableOrganizationAdminAccount(ctx, adminAccountID)); err != nil {
		return err
	}
	adminSecurityHub := o.securityHub(adminAccountID, region)
	if err := o.step(adminAccountID, region, "SecurityHub", "UpdateOrganizationConfiguration",
		adminSecurityHub.UpdateOrganizationConfiguration(ctx)); err != nil {
		return err
	}
	if err := o.step(adminAccountID, region, "SecurityHub", "CreateMembers",
		adminSecurityHub.CreateMembers(ctx, accounts)); err != nil {
		return err
	}
	o.metricMgr.IncrementMetric(metricmgr.TotalMembersCreated, int32(len(accounts)))

	// guardduty, delegated admin owns the detectors
	if err := o.step(managementAccountID, region, "GuardDuty", "EnableOrganizationAdminAccount",
		o.guardDuty(managementAccountID, region).EnableOrganizationAdminAccount(ctx, adminAccountID)); err != nil {
		return err
	}
	adminGuardDuty := o.guardDuty(adminAccountID, region)
	detectorIDs, err := adminGuardDuty.EnsureDetectors(ctx)
	if stepErr := o.step(adminAccountID, region, "GuardDuty", "EnsureDetectors", err); stepErr != nil {
		return stepErr
	}
	for _, detectorID := range detectorIDs {
		if err := o.step(adminAccountID, region, "GuardDuty", "UpdateOrganizationConfiguration",
			adminGuardDuty.UpdateOrganizationConfiguration(ctx, detectorID)); err != nil {
			return err
		}
		if err := o.step(adminAccountID, region, "GuardDuty", "CreateMembers",
			adminGuardDuty.CreateMembers(ctx, detectorID, accounts)); err != nil {
			return err
		}
		o.metricMgr.IncrementMetric(metricmgr.TotalMembersCreated, int32(len(accounts)))
	}

	// macie, enabled in the management account before delegating
	managementMacie := o.macie(managementAccountID, region)
	if err := o.step(managementAccountID, region, "Macie", "EnableMacie",
		managementMacie.EnableMacie(ctx)); err != nil {
		return err
	}
	if err := o.step(managementAccountID, region, "Macie", "EnableOrganizationAdminAccount",
		managementMacie.EnableOrganizationAdminAccount(ctx, adminAccountID)); err != nil {
		return err
	}
	adminMacie := o.macie(adminAccountID, region)
	if err := o.step(adminAccountID, region, "Macie", "EnableMacie",
		adminMacie.EnableMacie(ctx)); err != nil {
		return err
	}
	if err := o.step(adminAccountID, region, "Macie", "UpdateOrganizationConfiguration",
		adminMacie.UpdateOrganizationConfiguration(ctx)); err != nil {
		return err
	}
	if err := o.step(adminAccountID, region, "Macie", "CreateMembers",
		adminMacie.CreateMembers(ctx, accounts)); err != nil {
		return err
	}
	o.metricMgr.IncrementMetric(metricmgr.TotalMembersCreated, int32(len(accounts)))

	if err := o.step(managementAccountID, region, "FMS", "AssociateAdminAccount",
		o.fms(managementAccountID, region).AssociateAdminAccount(ctx, adminAccountID)); err != nil {
		return err
	}
	if err := o.step(managementAccountID, region, "SecurityLake", "RegisterDelegatedAdministrator",
		o.securityLake(managementAccountID, region).RegisterDelegatedAdministrator(ctx, adminAccountID)); err != nil {
		return err
	}
	if err := o.step(managementAccountID, region, "AuditManager", "RegisterOrganizationAdminAccount",
		o.auditManager(managementAccountID, region).RegisterOrganizationAdminAccount(ctx, adminAccountID)); err != nil {
		return err
	}
	if err := o.step(managementAccountID, region, "Inspector", "EnableDelegatedAdminAccount",
		o.inspector(managementAccountID, region).EnableDelegatedAdminAccount(ctx, adminAccountID)); err != nil {
		return err
	}

	// detective requires guardduty to be active for 48 hours first
	if o.config.EnableDetectiveAdmin {
		if err := o.step(managementAccountID, region, "Detective", "EnableOrganizationAdminAccount",
			o.detective(managementAccountID, region).EnableOrganizationAdminAccount(ctx, adminAccountID)); err != nil {
			return err
		}
	} else {
		o.exporter.Add(shared.SetupEntry{
			Timestamp: time.Now().Format(time.RFC3339),
			AccountID: managementAccountID,
			Region:    region,
			Service:   "Detective",
			Action:    "EnableOrganizationAdminAccount",
			Status:    shared.StatusSkipped,
			Message:   "detective delegation not enabled",
		})
	}

	if err := o.step(adminAccountID, region, "AccessAnalyzer", "CreateOrganizationAnalyzer",
		o.accessAnalyzer(adminAccountID, region).CreateOrganizationAnalyzer(ctx)); err != nil {
		return err
	}
	if err := o.step(managementAccountID, region, "AccessAnalyzer", "CreateManagementAnalyzer",
		o.accessAnalyzer(managementAccountID, region).CreateManagementAnalyzer(ctx)); err != nil {
		return err
	}
	return nil
}

// DisableSecurityHub disables every enabled Security Hub standard in every
// account and region on a bounded worker pool.
func (o *_OrganizationSetup) DisableSecurityHub(ctx context.Context) error {
	sos := o.GetLogger()
	managementAccountID := o.awsClientMgr.AccountID()

	orgAccounts, err := o.org.ListAccounts(ctx)
	if err != nil {
		return err
	}
	regions, err := o.ec2(managementAccountID, o.config.PrimaryRegion).AllRegions(ctx)
	if err != nil {
		return err
	}
	sos.Infof("disabling standards in [%d] accounts across [%d] regions", len(orgAccounts), len(regions))

	errChan := make(chan error, 1)
	errMgr := errormgr.NewErrorMgr()
	done := make(chan struct{})
	go func() {
		errMgr.ListenForErrors(errChan)
		close(done)
	}()

	pool := workerpool.New(maxConcurrentDisables, errChan)
	for _, account := range orgAccounts {
		accountID := aws.ToString(account.Id)
		for _, region := range regions {
			region := region
			pool.Submit(accountID+"|"+region, func() error {
				count, err := o.securityHub(accountID, region).DisableStandards(ctx, accountID)
				if err != nil {
					return errormgr.Error{
						AccountID: accountID,
						Region:    region,
						Service:   "SecurityHub",
						Message:   err.Error(),
					}
				}
				o.metricMgr.IncrementMetric(metricmgr.TotalStandardsDisabled, int32(count))
				return nil
			})
		}
	}
	pool.Wait()
	close(errChan)
	<-done

	collected := errMgr.GetErrors()
	if len(collected) > 0 {
		sos.Errorf("disable finished with [%d] errors", len(collected))
		return errors.Join(collected...)
	}
	total, _ := o.metricMgr.GetMetric(metricmgr.TotalStandardsDisabled)
	sos.Infof("disabled [%d] standards", total)
	return nil
}

// step records the outcome of one setup call and converts a failure into an
// error carrying its account, region and service context.
func (o *_OrganizationSetup) step(accountID string, region string, service string, action string, err error) error {
	status := shared.StatusSucceeded
	message := ""
	if err != nil {
		status = shared.StatusFailed
		message = err.Error()
		o.metricMgr.IncrementMetric(metricmgr.TotalFailures, 1)
	}
	o.exporter.Add(shared.SetupEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		AccountID: accountID,
		Region:    region,
		Service:   service,
		Action:    action,
		Status:    status,
		Message:   message,
	})
	if err != nil {
		return errormgr.Error{
			AccountID: accountID,
			Region:    region,
			Service:   service,
			Message:   err.Error(),
		}
	}
	return nil
}

// exportReport writes the setup report csv and uploads it when a report
// bucket is configured.
func (o *_OrganizationSetup) exportReport(ctx context.Context) error {
	filename := filepath.Join(os.TempDir(), string(shared.SetupReportFileName))
	if err := o.exporter.WriteToCSV(filename); err != nil {
		return err
	}
	if o.config.ReportBucketName == "" {
		return nil
	}
	_, err := o.exporter.ExportToS3(ctx, o.config.ReportBucketName)
	return err
}

// ####################################
// SERVICE WRAPPER HELPERS
// ####################################

func (o *_OrganizationSetup) ec2(accountID string, region string) *resources.EC2 {
	client, _ := o.awsClientMgr.GetSDKClient(accountID, region, awsclientmgr.EC2)
	return resources.NewEC2(client.(resources.EC2API), region)
}

func (o *_OrganizationSetup) securityHub(accountID string, region string) *resources.SecurityHub {
	client, _ := o.awsClientMgr.GetSDKClient(accountID, region, awsclientmgr.SecurityHub)
	return resources.NewSecurityHub(client.(resources.SecurityHubAPI), region)
}

func (o *_OrganizationSetup) guardDuty(accountID string, region string) *resources.GuardDuty {
	client, _ := o.awsClientMgr.GetSDKClient(accountID, region, awsclientmgr.GuardDuty)
	return resources.NewGuardDuty(client.(resources.GuardDutyAPI), region)
}

func (o *_OrganizationSetup) macie(accountID string, region string) *resources.Macie {
	client, _ := o.awsClientMgr.GetSDKClient(accountID, region, awsclientmgr.Macie)
	return resources.NewMacie(client.(resources.MacieAPI), region)
}

func (o *_OrganizationSetup) accessAnalyzer(accountID string, region string) *resources.AccessAnalyzer {
	client, _ := o.awsClientMgr.GetSDKClient(accountID, region, awsclientmgr.AccessAnalyzer)
	return resources.NewAccessAnalyzer(client.(resources.AccessAnalyzerAPI), region)
}

func (o *_OrganizationSetup) fms(accountID string, region string) *resources.FMS {
	client, _ := o.awsClientMgr.GetSDKClient(accountID, region, awsclientmgr.FMS)
	return resources.NewFMS(client.(resources.FMSAPI), region)
}

func (o *_OrganizationSetup) securityLake(accountID string, region string) *resources.SecurityLake {
	client, _ := o.awsClientMgr.GetSDKClient(accountID, region, awsclientmgr.SecurityLake)
	return resources.NewSecurityLake(client.(resources.SecurityLakeAPI), region)
}

func (o *_OrganizationSetup) auditManager(accountID string, region string) *resources.AuditManager {
	client, _ := o.awsClientMgr.GetSDKClient(accountID, region, awsclientmgr.AuditManager)
	return resources.NewAuditManager(client.(resources.AuditManagerAPI), region)
}

func (o *_OrganizationSetup) ram(accountID string, region string) *resources.RAM {
	client, _ := o.awsClientMgr.GetSDKClient(accountID, region, awsclientmgr.RAM)
	return resources.NewRAM(client.(resources.RAMAPI), region)
}

func (o *_OrganizationSetup) serviceCatalog(accountID string, region string) *resources.ServiceCatalog {
	client, _ := o.awsClientMgr.GetSDKClient(accountID, region, awsclientmgr.ServiceCatalog)
	return resources.NewServiceCatalog(client.(resources.ServiceCatalogAPI), region)
}

func (o *_OrganizationSetup) cloudFormation(accountID string, region string) *resources.CloudFormation {
	client, _ := o.awsClientMgr.GetSDKClient(accountID, region, awsclientmgr.CloudFormation)
	return resources.NewCloudFormation(client.(resources.CloudFormationAPI), region)
}

func (o *_OrganizationSetup) detective(accountID string, region string) *resources.Detective {
	client, _ := o.awsClientMgr.GetSDKClient(accountID, region, awsclientmgr.Detective)
	return resources.NewDetective(client.(resources.DetectiveAPI), region)
}

func (o *_OrganizationSetup) inspector(accountID string, region string) *resources.Inspector {
	client, _ := o.awsClientMgr.GetSDKClient(accountID, region, awsclientmgr.Inspector)
	return resources.NewInspector(client.(resources.InspectorAPI), region)
}
