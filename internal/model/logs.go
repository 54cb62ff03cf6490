package model

import "time"

// MaintenanceLog is the write-once archive entry produced when a report is resolved.
type MaintenanceLog struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	RoomNumber  string    `gorm:"size:32;not null;index" json:"roomNumber"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ImageURL    *string   `gorm:"column:image_url;type:text" json:"imageUrl"`
	ResolvedBy  string    `gorm:"size:128;not null" json:"resolvedBy"`
	Comment     string    `gorm:"type:text;not null" json:"comment"`
	ResolvedAt  time.Time `gorm:"not null;index" json:"resolvedAt"`
}

func (MaintenanceLog) TableName() string { return CollectionMaintenanceLogs }

// CleaningLog is a finished cleaning session recorded by the cleaning tracker.
type CleaningLog struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	RoomNumber      string    `gorm:"size:32;not null;index" json:"roomNumber"`
	EmployeeName    *string   `gorm:"size:128" json:"employeeName"`
	StartedAt       time.Time `gorm:"not null;index" json:"startedAt"`
	EndedAt         time.Time `gorm:"not null" json:"endedAt"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
}

func (CleaningLog) TableName() string { return CollectionCleaningLogs }
