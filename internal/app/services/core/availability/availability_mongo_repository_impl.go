package availability

import (
	"context"

	"soulful-sync-service/internal/app/contracts"
	"soulful-sync-service/internal/app/models"
	"soulful-sync-service/internal/pkg/constvars"
	"soulful-sync-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AvailabilityMongoRepository struct {
	Collection *mongo.Collection
}

func NewAvailabilityMongoRepository(db *mongo.Client, dbName string) contracts.AvailabilityRepository {
	return &AvailabilityMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAvailability),
	}
}

func (r *AvailabilityMongoRepository) FindByTherapistID(ctx context.Context, therapistID string) (*models.TherapistAvailability, error) {
	var doc models.TherapistAvailability
	err := r.Collection.FindOne(ctx, bson.M{"_id": therapistID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doc, nil
}

func (r *AvailabilityMongoRepository) Upsert(ctx context.Context, availability *models.TherapistAvailability) error {
	filter := bson.M{"_id": availability.TherapistID}
	update := bson.M{"$set": availability}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
