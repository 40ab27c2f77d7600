package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizRepo manages saved quiz results.
type QuizRepo interface {
	// Save stores a completed quiz, assigning its id and timestamp.
	Save(ctx context.Context, quiz SavedQuiz) (*SavedQuiz, error)

	// ForOwner returns the owner's saved quizzes, newest first.
	ForOwner(ctx context.Context, ownerID string) ([]SavedQuiz, error)
}

type quizRepo struct {
	db *gorm.DB
}

func (r *quizRepo) Save(ctx context.Context, quiz SavedQuiz) (*SavedQuiz, error) {
	quiz.ID = uuid.New().String()
	quiz.SavedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(&quiz).Error; err != nil {
		return nil, wrap("save quiz", err)
	}
	return &quiz, nil
}

func (r *quizRepo) ForOwner(ctx context.Context, ownerID string) ([]SavedQuiz, error) {
	var out []SavedQuiz
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("saved_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, wrap("list quizzes", err)
	}
	return out, nil
}
