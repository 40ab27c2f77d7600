package store

import (
	"context"

	"gorm.io/gorm"
)

// ObjectiveRepo manages learning objectives.
type ObjectiveRepo interface {
	// ForOwner returns the owner's objectives. A non-empty courseID
	// restricts the result to that course.
	ForOwner(ctx context.Context, ownerID, courseID string) ([]LearningObjective, error)

	// SaveAll upserts the batch in a single transaction (all-or-nothing).
	SaveAll(ctx context.Context, batch []LearningObjective) error
}

type objectiveRepo struct {
	db *gorm.DB
}

func (r *objectiveRepo) ForOwner(ctx context.Context, ownerID, courseID string) ([]LearningObjective, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if courseID != "" {
		q = q.Where("course_id = ?", courseID)
	}

	var out []LearningObjective
	if err := q.Order("name").Find(&out).Error; err != nil {
		return nil, wrap("load objectives", err)
	}
	return out, nil
}

func (r *objectiveRepo) SaveAll(ctx context.Context, batch []LearningObjective) error {
	if len(batch) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range batch {
			if err := tx.Save(&batch[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return wrap("save objectives", err)
}
