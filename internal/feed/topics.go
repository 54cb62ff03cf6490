package feed

import "github.com/Ferxas/chris-hotel-web-app/internal/model"

// Live topics. Each one is a full snapshot of a listing.
const (
	TopicRooms            = "rooms"
	TopicReports          = "reports"
	TopicReportsPending   = "reports_pending"
	TopicMaintenanceBoard = "maintenance_board"
	TopicCleaningLogs     = "cleaning_logs"
	TopicMaintenanceLogs  = "maintenance_logs"
	TopicDevices          = "devices"
	TopicDashboard        = "dashboard"
)

// collectionTopics lists the topics whose snapshot depends on a collection.
var collectionTopics = map[string][]string{
	model.CollectionRooms:           {TopicRooms, TopicMaintenanceBoard, TopicDashboard},
	model.CollectionProblemReports:  {TopicReports, TopicReportsPending, TopicMaintenanceBoard, TopicDashboard},
	model.CollectionCleaningLogs:    {TopicCleaningLogs},
	model.CollectionMaintenanceLogs: {TopicMaintenanceLogs},
	model.CollectionDevices:         {TopicDevices},
}

// TopicsFor returns the topics affected by a write to collection.
func TopicsFor(collection string) []string {
	return collectionTopics[collection]
}
