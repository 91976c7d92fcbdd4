package dto

import (
	"time"

	"github.com/google/uuid"
)

type LogAdherenceRequestBody struct {
	MedicationID   uuid.UUID `json:"medication_id" validate:"required"`
	MedicationName string    `json:"medication_name" validate:"required,max=255"`
	ScheduledTime  string    `json:"scheduled_time" validate:"required,max=16"`
	Action         string    `json:"action" validate:"required,oneof=taken skipped"`
}

type AdherenceLogResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	MedicationID   uuid.UUID `json:"medication_id"`
	MedicationName string    `json:"medication_name"`
	ScheduledTime  string    `json:"scheduled_time"`
	Action         string    `json:"action"`
	LoggedAt       time.Time `json:"logged_at"`
}

type AdherenceListResponse struct {
	Logs  []AdherenceLogResponse `json:"logs"`
	Total int                    `json:"total"`
}

type AckReminderRequestBody struct {
	Key    string `json:"key" validate:"required"`
	Action string `json:"action" validate:"required,oneof=taken snoozed dismissed"`
}
