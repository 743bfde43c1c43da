// Package postgres is the relational backend built on gorm. Conditional
// updates check RowsAffected; list mutations lock the row first.
package postgres

import (
	"context"
	"errors"

	"cars2customer_backend/internal/repositories"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type conn struct {
	db *gorm.DB
}

func (c *conn) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (c *conn) Close(context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func NewStore(db *gorm.DB) *repositories.Store {
	return &repositories.Store{
		Admins:   NewAdminRepository(db),
		Users:    NewUserRepository(db),
		Cars:     NewCarRepository(db),
		Bookings: NewBookingRepository(db),
		Conn:     &conn{db: db},
	}
}

var forUpdate = clause.Locking{Strength: "UPDATE"}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
