package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv(string(EnvPrimaryRegion), "us-east-1")
	t.Setenv(string(EnvAdministratorAccountName), "Audit")
	t.Setenv(string(EnvExecutionRoleName), "AWSControlTowerExecution")
}

func TestConfigFromEnv(t *testing.T) {
	assertion := assert.New(t)

	setRequiredEnv(t)
	t.Setenv(string(EnvRegions), "us-east-1, eu-west-1")
	t.Setenv(string(EnvEnableAIOptOutPolicy), "true")
	t.Setenv(string(EnvReportBucketName), "org-setup-reports")

	config, err := ConfigFromEnv()
	assertion.NoError(err)
	assertion.Equal("Audit", config.AdminAccountName)
	assertion.Equal("us-east-1", config.PrimaryRegion)
	assertion.Equal([]string{"us-east-1", "eu-west-1"}, config.Regions)
	assertion.Equal("AWSControlTowerExecution", config.ExecutionRoleName)
	assertion.True(config.EnableAIOptOutPolicy)
	assertion.False(config.EnableDetectiveAdmin)
	assertion.Equal("org-setup-reports", config.ReportBucketName)
}

func TestConfigFromEnvRequiredVars(t *testing.T) {
	assertion := assert.New(t)

	// administrator account name must be set, never defaulted
	setRequiredEnv(t)
	t.Setenv(string(EnvAdministratorAccountName), "")
	_, err := ConfigFromEnv()
	assertion.ErrorContains(err, string(EnvAdministratorAccountName))

	setRequiredEnv(t)
	t.Setenv(string(EnvPrimaryRegion), "")
	_, err = ConfigFromEnv()
	assertion.ErrorContains(err, string(EnvPrimaryRegion))

	setRequiredEnv(t)
	t.Setenv(string(EnvExecutionRoleName), "")
	_, err = ConfigFromEnv()
	assertion.ErrorContains(err, string(EnvExecutionRoleName))
}

func TestConfigFromEnvInvalidRegions(t *testing.T) {
	assertion := assert.New(t)

	setRequiredEnv(t)
	t.Setenv(string(EnvRegions), "us-east-1,not-a-region")
	_, err := ConfigFromEnv()
	assertion.ErrorContains(err, "not-a-region")

	setRequiredEnv(t)
	t.Setenv(string(EnvRegions), "")
	t.Setenv(string(EnvPrimaryRegion), "east")
	_, err = ConfigFromEnv()
	assertion.ErrorContains(err, "invalid primary region")
}
