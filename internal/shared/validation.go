package shared

import (
	"regexp"
	"strings"
)

var (
	accountIDRegex = regexp.MustCompile(`^\d{12}$`)
	regionRegex    = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d$`)
)

// validate a 12-digit AWS account id
func IsValidAccountID(accountID string) bool {
	return accountIDRegex.MatchString(accountID)
}

// validate an AWS region code, e.g. us-east-1 or us-gov-west-1
func IsValidRegion(region string) bool {
	return regionRegex.MatchString(region)
}

// SplitRegions parses a comma separated region list, dropping empty entries.
func SplitRegions(raw string) []string {
	regions := make([]string, 0)
	for _, region := range strings.Split(raw, ",") {
		region = strings.TrimSpace(region)
		if region == "" {
			continue
		}
		regions = append(regions, region)
	}
	return regions
}
