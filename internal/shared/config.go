package shared

import (
	"errors"
	"os"
)

// ConfigFromEnv reads the setup configuration from the environment.
// PRIMARY_REGION, ADMINISTRATOR_ACCOUNT_NAME and EXECUTION_ROLE_NAME are
// required; REGIONS, the toggles and REPORT_BUCKET_NAME are optional.
func ConfigFromEnv() (Config, error) {
	regions := SplitRegions(os.Getenv(string(EnvRegions)))
	for _, region := range regions {
		if !IsValidRegion(region) {
			return Config{}, errors.New("invalid region : [" + region + "]")
		}
	}

	primaryRegion := os.Getenv(string(EnvPrimaryRegion))
	if primaryRegion == "" {
		return Config{}, errors.New(string(EnvPrimaryRegion) + " not set")
	}
	if !IsValidRegion(primaryRegion) {
		return Config{}, errors.New("invalid primary region : [" + primaryRegion + "]")
	}

	adminAccountName := os.Getenv(string(EnvAdministratorAccountName))
	if adminAccountName == "" {
		return Config{}, errors.New(string(EnvAdministratorAccountName) + " not set")
	}

	executionRoleName := os.Getenv(string(EnvExecutionRoleName))
	if executionRoleName == "" {
		return Config{}, errors.New(string(EnvExecutionRoleName) + " not set")
	}

	return Config{
		AdminAccountName:     adminAccountName,
		PrimaryRegion:        primaryRegion,
		Regions:              regions,
		ExecutionRoleName:    executionRoleName,
		EnableAIOptOutPolicy: os.Getenv(string(EnvEnableAIOptOutPolicy)) == "true",
		EnableDetectiveAdmin: os.Getenv(string(EnvEnableDetectiveAdmin)) == "true",
		ReportBucketName:     os.Getenv(string(EnvReportBucketName)),
	}, nil
}
