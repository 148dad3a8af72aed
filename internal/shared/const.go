package shared

const (
	EnvRegions                  EnvVar = "REGIONS"
	EnvPrimaryRegion            EnvVar = "PRIMARY_REGION"
	EnvAdministratorAccountName EnvVar = "ADMINISTRATOR_ACCOUNT_NAME"
	EnvExecutionRoleName        EnvVar = "EXECUTION_ROLE_NAME"
	EnvEnableAIOptOutPolicy     EnvVar = "ENABLE_AI_OPTOUT_POLICY"
	EnvEnableDetectiveAdmin     EnvVar = "ENABLE_DETECTIVE_ADMIN"
	EnvReportBucketName         EnvVar = "REPORT_BUCKET_NAME"

	SetupReportFileName S3ObjectKey = "org-setup-report.csv"

	SetupLandingZoneEventName = "SetupLandingZone"

	AIOptOutPolicyName       = "AllOptOutPolicy"
	OrganizationAnalyzerName = "OrganizationAnalyzer"
	ManagementAnalyzerName   = "ManagementAnalyzer"

	SetupRoleSessionName   = "OrganizationSetup"
	DisableRoleSessionName = "DisableSecurityHub"

	StatusSucceeded SetupStatus = "SUCCEEDED"
	StatusSkipped   SetupStatus = "SKIPPED"
	StatusFailed    SetupStatus = "FAILED"
)

// https://docs.aws.amazon.com/organizations/latest/userguide/orgs_manage_policies_ai-opt-out_syntax.html#ai-opt-out-policy-examples
const AIOptOutPolicy = `{
  "services": {
    "@@operators_allowed_for_child_policies": ["@@none"],
    "default": {
      "@@operators_allowed_for_child_policies": ["@@none"],
      "opt_out_policy": {
        "@@operators_allowed_for_child_policies": ["@@none"],
        "@@assign": "optOut"
      }
    }
  }
}`

// service principals granted organization-wide access
var ServiceAccessPrincipals = []string{
	"backup.amazonaws.com",
	"config.amazonaws.com",
	"config-multiaccountsetup.amazonaws.com",
	"detective.amazonaws.com",
	"guardduty.amazonaws.com",
	"inspector2.amazonaws.com",
	"malware-protection.guardduty.amazonaws.com",
	"securitylake.amazonaws.com",
	"securityhub.amazonaws.com",
	"macie.amazonaws.com",
}

// service principals that support a delegated administrator account
var DelegatedAdministratorPrincipals = []string{
	"access-analyzer.amazonaws.com",
	"config-multiaccountsetup.amazonaws.com",
	"detective.amazonaws.com",
	"guardduty.amazonaws.com",
	"inspector2.amazonaws.com",
	"securitylake.amazonaws.com",
	"securityhub.amazonaws.com",
	"macie.amazonaws.com",
	"storage-lens.s3.amazonaws.com",
}
