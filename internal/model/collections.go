package model

// Collection names double as table names.
const (
	CollectionRooms           = "rooms"
	CollectionProblemReports  = "problem_reports"
	CollectionCleaningLogs    = "cleaning_logs"
	CollectionMaintenanceLogs = "maintenance_logs"
	CollectionDevices         = "device_tokens"
)

// All returns every model that must exist in the database.
func All() []any {
	return []any{
		&Room{},
		&ProblemReport{},
		&CleaningLog{},
		&MaintenanceLog{},
		&DeviceRegistration{},
	}
}
