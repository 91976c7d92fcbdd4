package converter

import (
	"medikeep/internal/delivery/dto"
	"medikeep/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileToResponse converts a Profile entity to a full response, including
// the resolved family member IDs.
func ProfileToResponse(profile *entity.Profile, family []uuid.UUID) *dto.ProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.ProfileResponse{
		UserID:           profile.UserID,
		Name:             profile.Name,
		Username:         profile.Username,
		AccountType:      string(profile.AccountType),
		Email:            profile.Email,
		PhoneNumber:      profile.PhoneNumber,
		Allergies:        profile.Allergies,
		EmergencyContact: profile.EmergencyContact,
		PictureURL:       profile.PictureURL,
		Family:           family,
		CreatedAt:        profile.CreatedAt,
		UpdatedAt:        profile.UpdatedAt,
	}
}

// ProfileToSummary strips a profile down to public display fields.
func ProfileToSummary(profile *entity.Profile) dto.ProfileSummaryResponse {
	return dto.ProfileSummaryResponse{
		UserID:      profile.UserID,
		Name:        profile.Name,
		Username:    profile.Username,
		AccountType: string(profile.AccountType),
		PictureURL:  profile.PictureURL,
	}
}

func ProfilesToSummaries(profiles []entity.Profile) []dto.ProfileSummaryResponse {
	summaries := make([]dto.ProfileSummaryResponse, 0, len(profiles))
	for i := range profiles {
		summaries = append(summaries, ProfileToSummary(&profiles[i]))
	}
	return summaries
}
