package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepo manages local user accounts.
type ProfileRepo interface {
	// ByName returns the profile with the given name, ErrNotFound if absent.
	ByName(ctx context.Context, name string) (*Profile, error)

	// Create stores a new profile with the given password hash.
	Create(ctx context.Context, name, passwordHash string) (*Profile, error)

	// UpdatePassword replaces the password hash for the named profile.
	UpdatePassword(ctx context.Context, name, passwordHash string) error

	// List returns all profiles ordered by name.
	List(ctx context.Context) ([]Profile, error)
}

type profileRepo struct {
	db *gorm.DB
}

func (r *profileRepo) ByName(ctx context.Context, name string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	if err != nil {
		return nil, wrap("load profile", err)
	}
	return &p, nil
}

func (r *profileRepo) Create(ctx context.Context, name, passwordHash string) (*Profile, error) {
	p := Profile{
		ID:           uuid.New().String(),
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, wrap("create profile", err)
	}
	return &p, nil
}

func (r *profileRepo) UpdatePassword(ctx context.Context, name, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&Profile{}).
		Where("name = ?", name).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return wrap("update password", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("update password", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *profileRepo) List(ctx context.Context) ([]Profile, error) {
	var out []Profile
	if err := r.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, wrap("list profiles", err)
	}
	return out, nil
}
