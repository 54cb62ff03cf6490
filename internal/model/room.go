package model

import "time"

// RoomState is the declared operational state of a room.
type RoomState string

const (
	RoomStateService  RoomState = "SE"
	RoomStateCheckout RoomState = "CO"
	RoomStateClean    RoomState = "CLEAN"
)

// Valid reports whether s is one of the three known states.
func (s RoomState) Valid() bool {
	switch s {
	case RoomStateService, RoomStateCheckout, RoomStateClean:
		return true
	}
	return false
}

// Room is a hotel room as tracked by the operations staff. Number is a
// user-visible label and is not unique.
type Room struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	Number          string     `gorm:"size:32;not null;index" json:"number"`
	State           RoomState  `gorm:"size:8;not null" json:"state"`
	LastCleaned     *time.Time `json:"lastCleaned"`
	LastMaintenance *time.Time `json:"lastMaintenance"`
	CleaningBy      *string    `gorm:"size:128" json:"cleaningBy"`
	CreatedAt       time.Time  `gorm:"not null" json:"createdAt"`
}

func (Room) TableName() string { return CollectionRooms }

// ManualKind selects which history timestamp a manual registration touches.
type ManualKind string

const (
	ManualClean       ManualKind = "clean"
	ManualMaintenance ManualKind = "maintenance"
)
