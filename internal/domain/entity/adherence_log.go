package entity

import (
	"time"

	"github.com/google/uuid"
)

// AdherenceAction records how a scheduled dose was resolved.
type AdherenceAction string

const (
	AdherenceActionTaken   AdherenceAction = "taken"
	AdherenceActionSkipped AdherenceAction = "skipped"
)

// AdherenceLog is an append-only record of a dose event. MedicationName is
// denormalized so history survives medication deletion.
type AdherenceLog struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	MedicationID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"medication_id"`
	MedicationName string          `gorm:"type:varchar(255);not null" json:"medication_name"`
	ScheduledTime  string          `gorm:"type:varchar(16);not null" json:"scheduled_time"`
	Action         AdherenceAction `gorm:"type:varchar(16);not null" json:"action"`
	LoggedAt       time.Time       `gorm:"autoCreateTime;index" json:"logged_at"`
}

func (AdherenceLog) TableName() string {
	return "adherence_logs"
}
