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

type AdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{coll: db.Collection(adminsCollection)}
}

// notTop restricts a filter to admins the management operations may touch.
var notTop = bson.E{Key: "isTopAdmin", Value: bson.D{{Key: "$ne", Value: true}}}

func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	_, err := r.coll.InsertOne(ctx, admin)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to insert admin: %w", err)
	}
	if admin.IsTopAdmin {
		if _, topErr := r.FindTop(ctx); topErr == nil {
			return repositories.ErrTopAdminExists
		}
	}
	return repositories.ErrAdminAlreadyExists
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.D) (*models.Admin, error) {
	var admin models.Admin
	if err := r.coll.FindOne(ctx, filter).Decode(&admin); err != nil {
		if isNoDocuments(err) {
			return nil, repositories.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return &admin, nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *AdminRepository) FindByUniqueID(ctx context.Context, uniqueID string) (*models.Admin, error) {
	if uniqueID == "" {
		return nil, repositories.ErrAdminNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "uniqueId", Value: uniqueID}})
}

func (r *AdminRepository) FindTop(ctx context.Context) (*models.Admin, error) {
	return r.findOne(ctx, bson.D{{Key: "isTopAdmin", Value: true}})
}

func (r *AdminRepository) ListNonTop(ctx context.Context) ([]models.Admin, error) {
	cursor, err := r.coll.Find(ctx, bson.D{notTop}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	admins := []models.Admin{}
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, fmt.Errorf("failed to decode admins: %w", err)
	}
	return admins, nil
}

func (r *AdminRepository) Update(ctx context.Context, uniqueID string, upd repositories.AdminUpdate) (*models.Admin, error) {
	filter := bson.D{{Key: "uniqueId", Value: uniqueID}, notTop}

	set := bson.D{}
	if upd.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *upd.Email})
	}
	if upd.PasswordHash != nil {
		set = append(set, bson.E{Key: "password", Value: *upd.PasswordHash})
	}
	if len(set) == 0 {
		return r.findOne(ctx, filter)
	}

	var admin models.Admin
	err := r.coll.FindOneAndUpdate(ctx, filter,
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&admin)
	switch {
	case err == nil:
		return &admin, nil
	case isNoDocuments(err):
		return nil, repositories.ErrAdminNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, repositories.ErrAdminAlreadyExists
	default:
		return nil, fmt.Errorf("failed to update admin: %w", err)
	}
}

func (r *AdminRepository) Delete(ctx context.Context, uniqueID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "uniqueId", Value: uniqueID}, notTop})
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrAdminNotFound
	}
	return nil
}
