package awsclientmgr

type AWSServiceName string

const (
	Organizations  AWSServiceName = "Organizations"
	STS            AWSServiceName = "STS"
	EC2            AWSServiceName = "EC2"
	SecurityHub    AWSServiceName = "SecurityHub"
	GuardDuty      AWSServiceName = "GuardDuty"
	Macie          AWSServiceName = "Macie"
	AccessAnalyzer AWSServiceName = "AccessAnalyzer"
	FMS            AWSServiceName = "FMS"
	SecurityLake   AWSServiceName = "SecurityLake"
	AuditManager   AWSServiceName = "AuditManager"
	RAM            AWSServiceName = "RAM"
	ServiceCatalog AWSServiceName = "ServiceCatalog"
	CloudFormation AWSServiceName = "CloudFormation"
	Detective      AWSServiceName = "Detective"
	Inspector      AWSServiceName = "Inspector"
	S3             AWSServiceName = "S3"
)
