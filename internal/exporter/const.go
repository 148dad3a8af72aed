package exporter

const (
	Timestamp string = "Timestamp"
	AccountID string = "AccountId"
	Region    string = "Region"
	Service   string = "Service"
	Action    string = "Action"
	Status    string = "Status"
	Message   string = "Message"
)
