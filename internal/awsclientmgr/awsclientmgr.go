package awsclientmgr

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/accessanalyzer"
	"github.com/aws/aws-sdk-go-v2/service/auditmanager"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/detective"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/fms"
	"github.com/aws/aws-sdk-go-v2/service/guardduty"
	"github.com/aws/aws-sdk-go-v2/service/inspector2"
	"github.com/aws/aws-sdk-go-v2/service/macie2"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/ram"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/securityhub"
	"github.com/aws/aws-sdk-go-v2/service/securitylake"
	"github.com/aws/aws-sdk-go-v2/service/servicecatalog"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/outofoffice3/org-setup/internal/cache"
	"github.com/outofoffice3/org-setup/internal/shared"
)

type AWSClientMgr interface {
	// set aws sdk client
	SetSDKClient(accountID string, region string, name AWSServiceName, client interface{}) error
	// get aws sdk client, constructing and caching it on first use
	GetSDKClient(accountID string, region string, name AWSServiceName) (interface{}, bool)
	// config scoped to an account and region; non-management accounts get
	// execution-role credentials
	Config(accountID string, region string) aws.Config
	// management account id
	AccountID() string
}

type _AWSClientMgr struct {
	ctx               context.Context
	cfg               aws.Config
	accountID         string
	executionRoleName string
	roleSessionName   string
	stsClient         *sts.Client
	clientCache       cache.Cache
	credsCache        cache.Cache
}

type AWSClientMgrInitConfig struct {
	Ctx               context.Context
	Cfg               aws.Config
	AccountID         string
	ExecutionRoleName string
	RoleSessionName   string
}

func Init(config AWSClientMgrInitConfig) (AWSClientMgr, error) {
	if !shared.IsValidAccountID(config.AccountID) {
		return nil, errors.New("invalid management account id : [" + config.AccountID + "]")
	}
	if config.ExecutionRoleName == "" {
		return nil, errors.New("execution role name not set")
	}
	roleSessionName := config.RoleSessionName
	if roleSessionName == "" {
		roleSessionName = shared.SetupRoleSessionName
	}
	log.Printf("init aws client mgr for account id [%s]", config.AccountID)

	return &_AWSClientMgr{
		ctx:               config.Ctx,
		cfg:               config.Cfg,
		accountID:         config.AccountID,
		executionRoleName: config.ExecutionRoleName,
		roleSessionName:   roleSessionName,
		stsClient:         sts.NewFromConfig(config.Cfg),
		clientCache:       cache.NewCache(),
		credsCache:        cache.NewCache(),
	}, nil
}

// get management account id
func (m *_AWSClientMgr) AccountID() string {
	return m.accountID
}

// Config returns a config for the account and region. The management account
// keeps the base credentials; any other account assumes the execution role
// through a cached credential provider.
func (m *_AWSClientMgr) Config(accountID string, region string) aws.Config {
	cfg := m.cfg.Copy()
	cfg.Region = region
	if accountID == m.accountID {
		return cfg
	}

	key := cache.CacheKey{PK: accountID, SK: "assume-role"}
	if creds, ok := m.credsCache.Get(key); ok {
		cfg.Credentials = creds.(aws.CredentialsProvider)
		return cfg
	}

	roleArn := "arn:aws:iam::" + accountID + ":role/" + m.executionRoleName
	log.Printf("assuming role [%s] in account [%s]", m.executionRoleName, accountID)
	provider := aws.NewCredentialsCache(stscreds.NewAssumeRoleProvider(m.stsClient, roleArn, func(o *stscreds.AssumeRoleOptions) {
		o.RoleSessionName = m.roleSessionName
		o.Duration = 15 * time.Minute // shortest duration
	}))
	m.credsCache.Set(key, provider)
	cfg.Credentials = provider
	return cfg
}

// set aws sdk client
func (m *_AWSClientMgr) SetSDKClient(accountID string, region string, name AWSServiceName, client interface{}) error {
	log.Printf("setting [%s] client for account id [%s] in [%s]", name, accountID, region)
	if client == nil {
		return errors.New("client is nil")
	}
	m.clientCache.Set(clientKey(accountID, region, name), client)
	return nil
}

// get aws sdk client
func (m *_AWSClientMgr) GetSDKClient(accountID string, region string, name AWSServiceName) (interface{}, bool) {
	key := clientKey(accountID, region, name)
	if client, ok := m.clientCache.Get(key); ok {
		return client, true
	}

	cfg := m.Config(accountID, region)
	var client interface{}
	switch name {
	case Organizations: // Organizations only exists in us-east-1
		client = organizations.NewFromConfig(cfg, func(o *organizations.Options) {
			o.Region = "us-east-1"
		})
	case STS:
		client = sts.NewFromConfig(cfg)
	case EC2:
		client = ec2.NewFromConfig(cfg)
	case SecurityHub:
		client = securityhub.NewFromConfig(cfg)
	case GuardDuty:
		client = guardduty.NewFromConfig(cfg)
	case Macie:
		client = macie2.NewFromConfig(cfg)
	case AccessAnalyzer:
		client = accessanalyzer.NewFromConfig(cfg)
	case FMS:
		client = fms.NewFromConfig(cfg)
	case SecurityLake:
		client = securitylake.NewFromConfig(cfg)
	case AuditManager:
		client = auditmanager.NewFromConfig(cfg)
	case RAM:
		client = ram.NewFromConfig(cfg)
	case ServiceCatalog:
		client = servicecatalog.NewFromConfig(cfg)
	case CloudFormation:
		client = cloudformation.NewFromConfig(cfg)
	case Detective:
		client = detective.NewFromConfig(cfg)
	case Inspector:
		client = inspector2.NewFromConfig(cfg)
	case S3:
		client = s3.NewFromConfig(cfg)
	default:
		log.Printf("unknown service name [%s]", name)
		return nil, false
	}

	m.clientCache.Set(key, client)
	return client, true
}

func clientKey(accountID string, region string, name AWSServiceName) cache.CacheKey {
	return cache.CacheKey{
		PK: accountID + "|" + region,
		SK: string(name),
	}
}
