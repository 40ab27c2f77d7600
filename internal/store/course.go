package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseRepo manages courses.
type CourseRepo interface {
	// List returns the owner's courses, newest first.
	List(ctx context.Context, ownerID string) ([]Course, error)

	// Create stores a new course.
	Create(ctx context.Context, name, ownerID string) (*Course, error)

	// Delete removes a course owned by ownerID. Learning objectives and
	// saved quizzes referencing the course are detached (course id
	// cleared), never deleted. The whole operation is one transaction.
	Delete(ctx context.Context, id, ownerID string) error
}

type courseRepo struct {
	db *gorm.DB
}

func (r *courseRepo) List(ctx context.Context, ownerID string) ([]Course, error) {
	var out []Course
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, wrap("list courses", err)
	}
	return out, nil
}

func (r *courseRepo) Create(ctx context.Context, name, ownerID string) (*Course, error) {
	c := Course{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, wrap("create course", err)
	}
	return &c, nil
}

func (r *courseRepo) Delete(ctx context.Context, id, ownerID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&Course{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&LearningObjective{}).
			Where("course_id = ?", id).
			Updates(map[string]any{"course_id": nil, "course_name": ""}).Error; err != nil {
			return err
		}

		return tx.Model(&SavedQuiz{}).
			Where("course_id = ?", id).
			Update("course_id", nil).Error
	})
	return wrap("delete course", err)
}
