package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/outofoffice3/common/logger"
	"github.com/outofoffice3/org-setup/handle"
	"github.com/outofoffice3/org-setup/internal/awsclientmgr"
	"github.com/outofoffice3/org-setup/internal/orgsetup"
	"github.com/outofoffice3/org-setup/internal/resources"
	"github.com/outofoffice3/org-setup/internal/shared"
)

var (
	sos                 logger.Logger
	baseCfg             aws.Config
	setupConfig         shared.Config
	managementAccountID string
)

func handler(ctx context.Context, raw json.RawMessage) error {
	sos.Debugf("event [%s]", string(raw))

	awsMgr, err := awsclientmgr.Init(awsclientmgr.AWSClientMgrInitConfig{
		Ctx:               ctx,
		Cfg:               baseCfg,
		AccountID:         managementAccountID,
		ExecutionRoleName: setupConfig.ExecutionRoleName,
	})
	if err != nil {
		return err
	}
	setup, err := orgsetup.Init(orgsetup.OrganizationSetupInitConfig{
		AwsClientMgr: awsMgr,
		Config:       setupConfig,
		Logger:       sos,
	})
	if err != nil {
		return err
	}

	// custom resource invocations carry a request type and a response url
	var probe struct {
		RequestType string `json:"RequestType"`
		ResponseURL string `json:"ResponseURL"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.RequestType != "" && probe.ResponseURL != "" {
		var event cfn.Event
		if err := json.Unmarshal(raw, &event); err != nil {
			return fmt.Errorf("failed to unmarshal custom resource event: %v", err)
		}
		sos.Debugf("custom resource event [%+v]", event)
		_, err := cfn.LambdaWrap(func(ctx context.Context, event cfn.Event) (string, map[string]interface{}, error) {
			return handle.HandleCustomResourceEvent(ctx, event, setup)
		})(ctx, event)
		return err
	}

	// otherwise a control tower lifecycle event through cloudwatch events
	var cloudWatchEvent events.CloudWatchEvent
	if err := json.Unmarshal(raw, &cloudWatchEvent); err != nil {
		return fmt.Errorf("failed to unmarshal cloudwatch event: %v", err)
	}
	var lifecycleEvent shared.LifecycleEvent
	if len(cloudWatchEvent.Detail) > 0 {
		if err := json.Unmarshal(cloudWatchEvent.Detail, &lifecycleEvent); err != nil {
			return fmt.Errorf("failed to unmarshal lifecycle event: %v", err)
		}
	}
	sos.Debugf("lifecycle event [%+v]", lifecycleEvent)

	return handle.HandleLifecycleEvent(ctx, lifecycleEvent, setupConfig.AdminAccountName, setup)
}

func main() {
	lambda.Start(handler)
}

func init() {
	sos = logger.NewConsoleLogger(logger.LogLevelInfo)
	sos.Infof("main init started")
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRetryer(func() aws.Retryer {
			return retry.NewStandard(func(o *retry.StandardOptions) {
				o.MaxAttempts = 10
			})
		}))
	if err != nil {
		sos.Errorf("failed to load SDK config, %v", err)
		panic("failed to load sdk config")
	}
	baseCfg = cfg

	setupConfig, err = shared.ConfigFromEnv()
	if err != nil {
		sos.Errorf("env vars not set, %v", err)
		panic("env vars not set: " + err.Error())
	}
	sos.Infof("configuration loaded [%+v]", setupConfig)

	stsWrapper := resources.NewSTS(sts.NewFromConfig(cfg))
	managementAccountID, err = stsWrapper.CallerAccountID(context.Background())
	if err != nil {
		sos.Errorf("failed to get caller identity, %v", err)
		panic("failed to get caller identity")
	}
	sos.Infof("running as management account [%s]", managementAccountID)
}
