package orgsetup

const (
	// max regions configured at once
	maxConcurrentRegions int = 5
	// max (account, region) pairs disabled at once
	maxConcurrentDisables int = 10
)
