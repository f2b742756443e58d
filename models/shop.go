package models

import "time"

// Shop represents a repair workshop profile.
type Shop struct {
	ID              string         `bson:"id" json:"id"`
	OwnerID         string         `bson:"ownerId" json:"ownerId"`
	Name            string         `bson:"name" json:"name"`
	Address         string         `bson:"address" json:"address"`
	Phone           string         `bson:"phone,omitempty" json:"phone,omitempty"`
	Description     string         `bson:"description,omitempty" json:"description,omitempty"`
	SlotGranularity int            `bson:"slotGranularity" json:"slotGranularity"` // minutes between candidate slot starts
	WorkingHours    []WorkingHours `bson:"workingHours" json:"workingHours"`
	FCMToken        string         `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt       time.Time      `bson:"createdAt" json:"createdAt"`
}
