package handle

import (
	"context"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/outofoffice3/org-setup/internal/orgsetup"
	"github.com/outofoffice3/org-setup/internal/shared"
)

// HandleLifecycleEvent configures the organization in response to a Control
// Tower SetupLandingZone lifecycle event. The event names the accounts the
// landing zone created; when one of them is the administrator account its id
// is taken from the event instead of a lookup by name.
func HandleLifecycleEvent(ctx context.Context, event shared.LifecycleEvent, adminAccountName string, setup orgsetup.OrganizationSetup) error {
	sos := setup.GetLogger()
	if event.EventName != shared.SetupLandingZoneEventName {
		sos.Infof("ignoring lifecycle event [%s]", event.EventName)
		return nil
	}

	if shared.IsValidRegion(event.AWSRegion) {
		sos.Infof("primary region from event : [%s]", event.AWSRegion)
		setup.SetPrimaryRegion(event.AWSRegion)
	}

	for _, account := range event.ServiceEventDetails.SetupLandingZoneStatus.Accounts {
		sos.Debugf("lifecycle event account [%s] : [%s]", account.AccountID, account.AccountName)
		if account.AccountName == adminAccountName && shared.IsValidAccountID(account.AccountID) {
			sos.Infof("administrator account from event : [%s]", account.AccountID)
			setup.SetAdminAccountID(account.AccountID)
		}
	}

	return setup.SetupOrganization(ctx)
}

// HandleCustomResourceEvent configures the organization when the stack that
// owns the custom resource is created or updated. Deletes are a no-op, the
// services stay enabled.
func HandleCustomResourceEvent(ctx context.Context, event cfn.Event, setup orgsetup.OrganizationSetup) (string, map[string]interface{}, error) {
	sos := setup.GetLogger()
	physicalResourceID := event.PhysicalResourceID
	if physicalResourceID == "" {
		physicalResourceID = "organization-setup"
	}

	switch event.RequestType {
	case cfn.RequestCreate, cfn.RequestUpdate:
		sos.Infof("custom resource [%s] : configuring organization", event.RequestType)
		return physicalResourceID, nil, setup.SetupOrganization(ctx)
	case cfn.RequestDelete:
		sos.Infof("custom resource delete : leaving services enabled")
		return physicalResourceID, nil, nil
	default:
		sos.Infof("ignoring custom resource request type [%s]", event.RequestType)
		return physicalResourceID, nil, nil
	}
}
