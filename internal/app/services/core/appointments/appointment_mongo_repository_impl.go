package appointments

import (
	"context"
	"time"

	"soulful-sync-service/internal/app/contracts"
	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/pkg/constvars"
	"soulful-sync-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (r *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	_, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return appointment, nil
}

func (r *AppointmentMongoRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	filter := bson.M{"_id": appointment.ID}
	update := bson.M{"$set": appointment}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.Collection.FindOne(ctx, bson.M{"_id": appointmentID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindByTherapistAndRange(ctx context.Context, therapistID string, start, end time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"therapist_id": therapistID,
		"date": bson.M{
			"$gte": models.DateOf(start),
			"$lt":  models.DateOf(end).AddDate(0, 0, 1),
		},
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var fetched []models.Appointment
	if err := cursor.All(ctx, &fetched); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	// The date filter is day-granular; refine to start instants in [start, end).
	out := make([]models.Appointment, 0, len(fetched))
	for _, a := range fetched {
		at := a.Date.Add(time.Duration(a.Start.Minutes()) * time.Minute)
		if !at.Before(start) && at.Before(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AppointmentMongoRepository) FindByTherapistPaged(ctx context.Context, therapistID, status string, page, pageSize int) ([]models.Appointment, int64, error) {
	filter := bson.M{"therapist_id": therapistID}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start.hour", Value: 1}, {Key: "start.minute", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var out []models.Appointment
	if err := cursor.All(ctx, &out); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return out, total, nil
}
