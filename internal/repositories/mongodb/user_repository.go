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

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

var (
	notVerified = bson.E{Key: "isVerified", Value: bson.D{{Key: "$ne", Value: true}}}
	returnAfter = options.FindOneAndUpdate().SetReturnDocument(options.After)
)

// otpMatch is the acceptance filter for a submitted code: equal and not expired.
func otpMatch(email, code string, now time.Time) bson.D {
	return bson.D{
		{Key: "email", Value: email},
		{Key: "otp", Value: code},
		{Key: "otpExpiry", Value: bson.D{{Key: "$gt", Value: now}}},
	}
}

var clearOTP = bson.D{
	{Key: "otp", Value: nil},
	{Key: "otpExpiry", Value: nil},
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.D) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if isNoDocuments(err) {
			return nil, repositories.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.Favorites == nil {
		user.Favorites = []models.Car{}
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *UserRepository) FindByUniqueID(ctx context.Context, uniqueID string) (*models.User, error) {
	if uniqueID == "" {
		return nil, repositories.ErrUserNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "uniqueId", Value: uniqueID}})
}

// UpsertPendingOTP filters on "not verified", so a verified record makes the
// upsert collide with the unique email index instead of being overwritten.
func (r *UserRepository) UpsertPendingOTP(ctx context.Context, email string, grant repositories.OTPGrant) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "otp", Value: grant.Code},
			{Key: "otpExpiry", Value: grant.ExpiresAt},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "isVerified", Value: false},
			{Key: "favorites", Value: bson.A{}},
		}},
	}
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}, notVerified},
		update,
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrUserAlreadyVerified
		}
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

func (r *UserRepository) SetOTP(ctx context.Context, email string, grant repositories.OTPGrant) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "otp", Value: grant.Code},
			{Key: "otpExpiry", Value: grant.ExpiresAt},
		}}},
	)
	if err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) CompleteRegistration(ctx context.Context, email, code string, now time.Time, reg repositories.Registration) (*models.User, error) {
	filter := append(otpMatch(email, code, now), notVerified)
	set := append(bson.D{
		{Key: "password", Value: reg.PasswordHash},
		{Key: "uniqueId", Value: reg.UniqueID},
		{Key: "isVerified", Value: true},
	}, clearOTP...)

	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: set}}, returnAfter).Decode(&user)
	if err != nil {
		if isNoDocuments(err) {
			return nil, repositories.ErrOTPRejected
		}
		return nil, fmt.Errorf("failed to complete registration: %w", err)
	}
	if user.Favorites == nil {
		user.Favorites = []models.Car{}
	}
	return &user, nil
}

func (r *UserRepository) ResetPassword(ctx context.Context, email, code string, now time.Time, passwordHash string) error {
	set := append(bson.D{{Key: "password", Value: passwordHash}}, clearOTP...)

	res, err := r.coll.UpdateOne(ctx, otpMatch(email, code, now), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrOTPRejected
	}
	return nil
}

func (r *UserRepository) CreateVerified(ctx context.Context, user *models.User) error {
	doc := *user
	doc.IsVerified = true
	doc.OTP, doc.OTPExpiry = nil, nil
	if doc.Favorites == nil {
		doc.Favorites = []models.Car{}
	}
	if _, err := r.coll.InsertOne(ctx, &doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, email, uniqueID string) (*models.User, error) {
	set := append(bson.D{
		{Key: "uniqueId", Value: uniqueID},
		{Key: "isVerified", Value: true},
	}, clearOTP...)

	var user models.User
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "email", Value: email}, notVerified},
		bson.D{{Key: "$set", Value: set}},
		returnAfter,
	).Decode(&user)
	if err == nil {
		if user.Favorites == nil {
			user.Favorites = []models.Car{}
		}
		return &user, nil
	}
	if !isNoDocuments(err) {
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}
	if _, findErr := r.FindByEmail(ctx, email); findErr != nil {
		return nil, findErr
	}
	return nil, repositories.ErrUserAlreadyVerified
}

// AddFavorite pushes the snapshot only when no favorite has the same carId,
// so concurrent adds of one car cannot both land.
func (r *UserRepository) AddFavorite(ctx context.Context, uniqueID string, car models.Car) ([]models.Car, error) {
	filter := bson.D{
		{Key: "uniqueId", Value: uniqueID},
		{Key: "favorites.carId", Value: bson.D{{Key: "$ne", Value: car.CarID}}},
	}
	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, filter,
		bson.D{{Key: "$push", Value: bson.D{{Key: "favorites", Value: car.Snapshot()}}}},
		returnAfter,
	).Decode(&user)
	if err == nil {
		return user.Favorites, nil
	}
	if !isNoDocuments(err) {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	if _, findErr := r.FindByUniqueID(ctx, uniqueID); findErr != nil {
		return nil, findErr
	}
	return nil, repositories.ErrAlreadyFavorited
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, uniqueID, carID string) ([]models.Car, error) {
	filter := bson.D{
		{Key: "uniqueId", Value: uniqueID},
		{Key: "favorites.carId", Value: carID},
	}
	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, filter,
		bson.D{{Key: "$pull", Value: bson.D{{Key: "favorites", Value: bson.D{{Key: "carId", Value: carID}}}}}},
		returnAfter,
	).Decode(&user)
	if err == nil {
		if user.Favorites == nil {
			user.Favorites = []models.Car{}
		}
		return user.Favorites, nil
	}
	if !isNoDocuments(err) {
		return nil, fmt.Errorf("failed to remove favorite: %w", err)
	}
	if _, findErr := r.FindByUniqueID(ctx, uniqueID); findErr != nil {
		return nil, findErr
	}
	return nil, repositories.ErrFavoriteNotFound
}

func (r *UserRepository) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.D{
			{Key: "isVerified", Value: true},
			{Key: "otpExpiry", Value: bson.D{{Key: "$lte", Value: now}}},
		},
		bson.D{{Key: "$set", Value: clearOTP}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired otps: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *UserRepository) DeleteStaleUnverified(ctx context.Context, expiredBefore time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{
		notVerified,
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "otpExpiry", Value: bson.D{{Key: "$lt", Value: expiredBefore}}}},
			bson.D{{Key: "otpExpiry", Value: nil}},
		}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale users: %w", err)
	}
	return res.DeletedCount, nil
}
