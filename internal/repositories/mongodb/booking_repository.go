package mongodb

import (
	"context"
	"fmt"
	"time"

	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// bookingDocument keeps the ObjectID _id of existing booking documents; the
// API exposes its hex form.
type bookingDocument struct {
	ID          bson.ObjectID        `bson:"_id,omitempty"`
	Username    string               `bson:"username"`
	PhoneNumber string               `bson:"phoneNumber"`
	ContactID   string               `bson:"contactId"`
	CarName     string               `bson:"carName"`
	Status      models.BookingStatus `bson:"status"`
	CurrentTime time.Time            `bson:"currentTime"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

func (d *bookingDocument) toModel() models.CarBooking {
	return models.CarBooking{
		ID:          d.ID.Hex(),
		Username:    d.Username,
		PhoneNumber: d.PhoneNumber,
		ContactID:   d.ContactID,
		CarName:     d.CarName,
		Status:      d.Status,
		CurrentTime: d.CurrentTime,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(bookingsCollection)}
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.CarBooking) error {
	doc := bookingDocument{
		ID:          bson.NewObjectID(),
		Username:    booking.Username,
		PhoneNumber: booking.PhoneNumber,
		ContactID:   booking.ContactID,
		CarName:     booking.CarName,
		Status:      booking.Status,
		CurrentTime: booking.CurrentTime,
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, &doc); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	booking.ID = doc.ID.Hex()
	return nil
}

func (r *BookingRepository) FindAll(ctx context.Context) ([]models.CarBooking, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	bookings := make([]models.CarBooking, 0, len(docs))
	for i := range docs {
		bookings = append(bookings, docs[i].toModel())
	}
	return bookings, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.CarBooking, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrBookingNotFound
	}
	var doc bookingDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repositories.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	b := doc.toModel()
	return &b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.CarBooking, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrBookingNotFound
	}
	var doc bookingDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: status},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
		returnAfter,
	).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, repositories.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	b := doc.toModel()
	return &b, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return repositories.ErrBookingNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrBookingNotFound
	}
	return nil
}
