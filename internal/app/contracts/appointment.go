package contracts

import (
	"context"
	"time"

	"soulful-sync-service/internal/app/models"
)

type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	// FindByTherapistAndRange returns appointments with a start instant in
	// [start, end), any status.
	FindByTherapistAndRange(ctx context.Context, therapistID string, start, end time.Time) ([]models.Appointment, error)
	FindByTherapistPaged(ctx context.Context, therapistID, status string, page, pageSize int) ([]models.Appointment, int64, error)
}
