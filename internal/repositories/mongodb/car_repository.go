package mongodb

import (
	"context"
	"fmt"

	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CarRepository struct {
	coll *mongo.Collection
}

func NewCarRepository(db *mongo.Database) *CarRepository {
	return &CarRepository{coll: db.Collection(carsCollection)}
}

func normalizeCar(car *models.Car) {
	if car.Images == nil {
		car.Images = []string{}
	}
	if car.Features == nil {
		car.Features = []models.CarFeature{}
	}
	if car.TechnicalSpecifications == nil {
		car.TechnicalSpecifications = []models.CarSpecEntry{}
	}
}

func (r *CarRepository) Create(ctx context.Context, car *models.Car) error {
	doc := car.Snapshot()
	normalizeCar(&doc)
	if _, err := r.coll.InsertOne(ctx, &doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrCarAlreadyExists
		}
		return fmt.Errorf("failed to insert car: %w", err)
	}
	return nil
}

func (r *CarRepository) FindByCarID(ctx context.Context, carID string) (*models.Car, error) {
	var car models.Car
	if err := r.coll.FindOne(ctx, bson.D{{Key: "carId", Value: carID}}).Decode(&car); err != nil {
		if isNoDocuments(err) {
			return nil, repositories.ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to find car: %w", err)
	}
	normalizeCar(&car)
	return &car, nil
}

// FindAll returns the catalog in insertion order.
func (r *CarRepository) FindAll(ctx context.Context) ([]models.Car, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	cars := []models.Car{}
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("failed to decode cars: %w", err)
	}
	for i := range cars {
		normalizeCar(&cars[i])
	}
	return cars, nil
}

func carUpdateDoc(upd repositories.CarUpdate) bson.D {
	set := bson.D{}
	addString := func(key string, v *string) {
		if v != nil {
			set = append(set, bson.E{Key: key, Value: *v})
		}
	}
	addString("brand", upd.Brand)
	addString("model", upd.Model)
	addString("year", upd.Year)
	addString("price", upd.Price)
	addString("paragraph", upd.Paragraph)
	addString("kmDriven", upd.KmDriven)
	addString("fuelType", upd.FuelType)
	addString("transmission", upd.Transmission)
	addString("condition", upd.Condition)
	addString("location", upd.Location)
	if upd.Images != nil {
		set = append(set, bson.E{Key: "images", Value: *upd.Images})
	}
	if upd.Features != nil {
		set = append(set, bson.E{Key: "features", Value: *upd.Features})
	}
	if upd.TechnicalSpecifications != nil {
		set = append(set, bson.E{Key: "technicalSpecifications", Value: *upd.TechnicalSpecifications})
	}
	return set
}

func (r *CarRepository) Update(ctx context.Context, carID string, upd repositories.CarUpdate) (*models.Car, error) {
	set := carUpdateDoc(upd)
	if len(set) == 0 {
		return r.FindByCarID(ctx, carID)
	}
	return r.findOneAndUpdate(ctx, carID, bson.D{{Key: "$set", Value: set}})
}

func (r *CarRepository) Delete(ctx context.Context, carID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "carId", Value: carID}})
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrCarNotFound
	}
	return nil
}

func (r *CarRepository) AppendImage(ctx context.Context, carID, url string) (*models.Car, error) {
	return r.findOneAndUpdate(ctx, carID, bson.D{{Key: "$push", Value: bson.D{{Key: "images", Value: url}}}})
}

func (r *CarRepository) findOneAndUpdate(ctx context.Context, carID string, update bson.D) (*models.Car, error) {
	var car models.Car
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "carId", Value: carID}}, update, returnAfter).Decode(&car)
	if err != nil {
		if isNoDocuments(err) {
			return nil, repositories.ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to update car: %w", err)
	}
	normalizeCar(&car)
	return &car, nil
}
