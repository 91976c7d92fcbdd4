package converter

import (
	"medikeep/internal/delivery/dto"
	"medikeep/internal/domain/entity"
)

func MedicationToResponse(medication *entity.Medication) *dto.MedicationResponse {
	if medication == nil {
		return nil
	}

	return &dto.MedicationResponse{
		ID:           medication.ID,
		UserID:       medication.UserID,
		Name:         medication.Name,
		Dosage:       medication.Dosage,
		Times:        medication.Times,
		Quantity:     medication.Quantity,
		QuantityUnit: medication.QuantityUnit,
		ExpiryDate:   medication.ExpiryDate,
		CreatedAt:    medication.CreatedAt,
		UpdatedAt:    medication.UpdatedAt,
	}
}

func MedicationsToResponses(medications []entity.Medication) []dto.MedicationResponse {
	responses := make([]dto.MedicationResponse, 0, len(medications))
	for i := range medications {
		responses = append(responses, *MedicationToResponse(&medications[i]))
	}
	return responses
}

func StoredMedicineToResponse(medicine *entity.StoredMedicine) *dto.StoredMedicineResponse {
	if medicine == nil {
		return nil
	}

	return &dto.StoredMedicineResponse{
		ID:         medicine.ID,
		UserID:     medicine.UserID,
		Name:       medicine.Name,
		ExpiryDate: medicine.ExpiryDate,
		Quantity:   medicine.Quantity,
		PhotoURL:   medicine.PhotoURL,
		CreatedAt:  medicine.CreatedAt,
	}
}

func StoredMedicinesToResponses(medicines []entity.StoredMedicine) []dto.StoredMedicineResponse {
	responses := make([]dto.StoredMedicineResponse, 0, len(medicines))
	for i := range medicines {
		responses = append(responses, *StoredMedicineToResponse(&medicines[i]))
	}
	return responses
}

func AdherenceLogToResponse(log *entity.AdherenceLog) *dto.AdherenceLogResponse {
	if log == nil {
		return nil
	}

	return &dto.AdherenceLogResponse{
		ID:             log.ID,
		UserID:         log.UserID,
		MedicationID:   log.MedicationID,
		MedicationName: log.MedicationName,
		ScheduledTime:  log.ScheduledTime,
		Action:         string(log.Action),
		LoggedAt:       log.LoggedAt,
	}
}

func AdherenceLogsToResponses(logs []entity.AdherenceLog) []dto.AdherenceLogResponse {
	responses := make([]dto.AdherenceLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, *AdherenceLogToResponse(&logs[i]))
	}
	return responses
}
