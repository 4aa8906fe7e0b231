// Package store is the Entity Store. Every core operation runs inside one
// UnitOfWork obtained from Store.Do; nothing here holds a package-level
// database handle.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when a lookup by id matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when the store rejects a row because of a
	// unique constraint.
	ErrDuplicate = errors.New("duplicate key")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Do runs fn in a single transaction bound to ctx. The transaction commits
// when fn returns nil and rolls back on an error or a panic.
func (s *Store) Do(ctx context.Context, fn func(uow *UnitOfWork) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UnitOfWork{tx: tx})
	})
}

// Ping checks that the underlying connection pool is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// UnitOfWork is the transactional view of the store handed to one request.
type UnitOfWork struct {
	tx *gorm.DB
}

// Get loads the row of type T with the given primary key.
func Get[T any](u *UnitOfWork, id uint) (*T, error) {
	var entity T
	if err := u.tx.First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %T %d: %w", entity, id, err)
	}
	return &entity, nil
}

// Exists reports whether a row of type T with the given id exists.
func Exists[T any](u *UnitOfWork, id uint) (bool, error) {
	var count int64
	var model T
	if err := u.tx.Model(&model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("exists %T %d: %w", model, id, err)
	}
	return count > 0, nil
}

// FindBy returns every row of type T whose column equals value, by id.
func FindBy[T any](u *UnitOfWork, column string, value interface{}) ([]T, error) {
	var rows []T
	err := u.tx.
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find by %s: %w", column, err)
	}
	return rows, nil
}

// All returns every row of type T in ascending id order.
func All[T any](u *UnitOfWork) ([]T, error) {
	var rows []T
	if err := u.tx.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return rows, nil
}

// Insert creates entity without touching its associations. The generated
// id is set on entity and visible to the rest of the unit of work.
func (u *UnitOfWork) Insert(entity interface{}) error {
	if err := u.tx.Omit(clause.Associations).Create(entity).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update saves every column of entity, associations excluded.
func (u *UnitOfWork) Update(entity interface{}) error {
	if err := u.tx.Omit(clause.Associations).Save(entity).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Delete removes entity by its primary key.
func (u *UnitOfWork) Delete(entity interface{}) error {
	if err := u.tx.Delete(entity).Error; err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}
