package main

import (
	"context"
	"flag"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/org-setup/internal/awsclientmgr"
	"github.com/outofoffice3/org-setup/internal/orgsetup"
	"github.com/outofoffice3/org-setup/internal/resources"
	"github.com/outofoffice3/org-setup/internal/shared"
)

// disablesecurityhub turns off every enabled Security Hub standard in every
// active account and region of the organization. Run it from the management
// account.
func main() {
	profile := flag.String("profile", "", "shared config profile to use")
	role := flag.String("role", "AWSControlTowerExecution", "execution role assumed in member accounts")
	flag.Parse()

	sos := logger.NewConsoleLogger(logger.LogLevelInfo)
	ctx := context.Background()

	optFns := []func(*config.LoadOptions) error{
		config.WithRetryer(func() aws.Retryer {
			return retry.NewStandard(func(o *retry.StandardOptions) {
				o.MaxAttempts = 10
			})
		}),
	}
	if *profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(*profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		sos.Errorf("failed to load SDK config, %v", err)
		os.Exit(1)
	}

	stsWrapper := resources.NewSTS(sts.NewFromConfig(cfg))
	managementAccountID, err := stsWrapper.CallerAccountID(ctx)
	if err != nil {
		sos.Errorf("failed to get caller identity, %v", err)
		os.Exit(1)
	}
	sos.Infof("running as management account [%s]", managementAccountID)

	awsMgr, err := awsclientmgr.Init(awsclientmgr.AWSClientMgrInitConfig{
		Ctx:               ctx,
		Cfg:               cfg,
		AccountID:         managementAccountID,
		ExecutionRoleName: *role,
		RoleSessionName:   shared.DisableRoleSessionName,
	})
	if err != nil {
		sos.Errorf("failed to init aws client mgr, %v", err)
		os.Exit(1)
	}

	primaryRegion := cfg.Region
	if primaryRegion == "" {
		primaryRegion = "us-east-1"
	}
	setup, err := orgsetup.Init(orgsetup.OrganizationSetupInitConfig{
		AwsClientMgr: awsMgr,
		Config: shared.Config{
			PrimaryRegion:     primaryRegion,
			ExecutionRoleName: *role,
		},
		Logger: sos,
	})
	if err != nil {
		sos.Errorf("failed to init organization setup, %v", err)
		os.Exit(1)
	}

	if err := setup.DisableSecurityHub(ctx); err != nil {
		sos.Errorf("disable finished with errors : %v", err)
		os.Exit(1)
	}
	sos.Infof("security hub standards disabled")
}
