package contracts

import (
	"context"

	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/pkg/dto/requests"
	"soulful-sync-service/internal/pkg/dto/responses"
)

type AvailabilityUsecase interface {
	GetAvailability(ctx context.Context, therapistID string) (*responses.Availability, error)
	UpdateWorkingHours(ctx context.Context, therapistID string, request *requests.UpdateWorkingHours) (*responses.Availability, error)
	AddBlockedInterval(ctx context.Context, therapistID string, request *requests.CreateBlockedInterval) (*responses.BlockedInterval, error)
	RemoveBlockedInterval(ctx context.Context, therapistID, intervalID string) error
}

type AvailabilityRepository interface {
	FindByTherapistID(ctx context.Context, therapistID string) (*models.TherapistAvailability, error)
	Upsert(ctx context.Context, availability *models.TherapistAvailability) error
}
