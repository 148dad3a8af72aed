package shared

type EnvVar string
type S3BucketName string
type S3ObjectKey string
type SetupStatus string

// Config represents the overall configuration structure.
type Config struct {
	AdminAccountName     string   `json:"adminAccountName"`
	PrimaryRegion        string   `json:"primaryRegion"`
	Regions              []string `json:"regions"`
	ExecutionRoleName    string   `json:"executionRoleName"`
	EnableAIOptOutPolicy bool     `json:"enableAiOptOutPolicy"`
	EnableDetectiveAdmin bool     `json:"enableDetectiveAdmin"`
	ReportBucketName     string   `json:"reportBucketName"`
}

// Account represents an active member account of the organization.
type Account struct {
	ID    string `json:"accountId"`
	Name  string `json:"accountName"`
	Email string `json:"email"`
}

// LifecycleEvent is the Control Tower lifecycle event delivered through
// CloudWatch Events when a landing zone is set up.
type LifecycleEvent struct {
	EventName           string              `json:"eventName"`
	AWSRegion           string              `json:"awsRegion"`
	ServiceEventDetails ServiceEventDetails `json:"serviceEventDetails"`
}

type ServiceEventDetails struct {
	SetupLandingZoneStatus SetupLandingZoneStatus `json:"setupLandingZoneStatus"`
}

type SetupLandingZoneStatus struct {
	Accounts []LifecycleAccount `json:"accounts"`
}

type LifecycleAccount struct {
	AccountID   string `json:"accountId"`
	AccountName string `json:"accountName"`
	Email       string `json:"email"`
}

// SetupEntry is one line of the setup execution report.
type SetupEntry struct {
	Timestamp string      `json:"timestamp"`
	AccountID string      `json:"accountId"`
	Region    string      `json:"region"`
	Service   string      `json:"service"`
	Action    string      `json:"action"`
	Status    SetupStatus `json:"status"`
	Message   string      `json:"message"`
}
