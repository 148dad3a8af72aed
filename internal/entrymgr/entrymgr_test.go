package entrymgr

import (
	"testing"
	"time"

	"github.com/outofoffice3/org-setup/internal/shared"
	"github.com/stretchr/testify/assert"
)

func TestEntryMgr(t *testing.T) {
	assertion := assert.New(t)

	em := Init()
	assertion.NotNil(em)

	// ####################################
	// ADD TO ENTRY MGR
	// ####################################

	succeeded := shared.SetupEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		AccountID: "111111111111",
		Region:    "us-east-1",
		Service:   "SecurityHub",
		Action:    "EnableOrganizationAdminAccount",
		Status:    shared.StatusSucceeded,
	}
	assertion.NoError(em.Add(succeeded))

	skipped := shared.SetupEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		AccountID: "111111111111",
		Region:    "us-east-1",
		Service:   "Detective",
		Action:    "EnableOrganizationAdminAccount",
		Status:    shared.StatusSkipped,
		Message:   "detective delegation not enabled",
	}
	assertion.NoError(em.Add(skipped))

	failed := shared.SetupEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		AccountID: "111111111111",
		Region:    "eu-west-1",
		Service:   "Macie",
		Action:    "EnableMacie",
		Status:    shared.StatusFailed,
		Message:   "access denied",
	}
	assertion.NoError(em.Add(failed))

	unknown := shared.SetupEntry{
		Status: shared.SetupStatus("UNKNOWN"),
	}
	assertion.Error(em.Add(unknown))

	// ####################################
	// GET ENTRIES FROM ENTRY MGR
	// ####################################

	succeededEntries, err := em.GetEntries(shared.StatusSucceeded)
	assertion.NoError(err)
	assertion.Len(succeededEntries, 1)
	assertion.Equal("SecurityHub", succeededEntries[0].Service)

	skippedEntries, err := em.GetEntries(shared.StatusSkipped)
	assertion.NoError(err)
	assertion.Len(skippedEntries, 1)

	failedEntries, err := em.GetEntries(shared.StatusFailed)
	assertion.NoError(err)
	assertion.Len(failedEntries, 1)
	assertion.Equal("access denied", failedEntries[0].Message)

	_, err = em.GetEntries(shared.SetupStatus("UNKNOWN"))
	assertion.Error(err)
}
