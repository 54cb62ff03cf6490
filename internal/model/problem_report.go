package model

import "time"

// ProblemReport is an issue raised against a room. RoomNumber refers to
// Room.Number by value only.
type ProblemReport struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	RoomNumber        string     `gorm:"size:32;not null;index" json:"roomNumber"`
	Description       string     `gorm:"type:text;not null" json:"description"`
	EmployeeName      *string    `gorm:"size:128" json:"employeeName"`
	ReportedAt        time.Time  `gorm:"not null;index" json:"reportedAt"`
	ImageURL          *string    `gorm:"column:image_url;type:text" json:"imageUrl"`
	Resolved          bool       `gorm:"not null;index" json:"resolved"`
	ResolvedAt        *time.Time `json:"resolvedAt"`
	ResolvedBy        *string    `gorm:"size:128" json:"resolvedBy"`
	ResolutionComment *string    `gorm:"type:text" json:"resolutionComment"`
}

func (ProblemReport) TableName() string { return CollectionProblemReports }
