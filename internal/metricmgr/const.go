package metricmgr

type Metric string

const (
	TotalRegions           Metric = "TotalRegions"
	TotalAccounts          Metric = "TotalAccounts"
	TotalDelegations       Metric = "TotalDelegations"
	TotalMembersCreated    Metric = "TotalMembersCreated"
	TotalStandardsDisabled Metric = "TotalStandardsDisabled"
	TotalFailures          Metric = "TotalFailures"
)
