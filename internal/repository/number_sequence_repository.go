package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pbpl/workorder-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NumberSequenceRepository issues per-day work-order sequence numbers.
type NumberSequenceRepository struct {
	db *gorm.DB
}

// NewNumberSequenceRepository creates a new NumberSequenceRepository
func NewNumberSequenceRepository(db *gorm.DB) *NumberSequenceRepository {
	return &NumberSequenceRepository{db: db}
}

// NextDaySequence atomically increments and returns the sequence for a day.
// The row is read with SELECT FOR UPDATE so concurrent callers never receive
// the same value. On first use the sequence is seeded with the number of work
// orders created in [dayStart, dayEnd), so the first value equals that count
// plus one and numbers are never reissued after deletions.
func (r *NumberSequenceRepository) NextDaySequence(ctx context.Context, scope string, dayStart, dayEnd time.Time) (int, error) {
	next, err := r.nextDaySequence(ctx, scope, dayStart, dayEnd)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// another request seeded the day first; the row now exists and can be locked
		next, err = r.nextDaySequence(ctx, scope, dayStart, dayEnd)
	}
	return next, err
}

func (r *NumberSequenceRepository) nextDaySequence(ctx context.Context, scope string, dayStart, dayEnd time.Time) (int, error) {
	var next int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq domain.NumberSequence
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("scope = ?", scope).
			First(&seq)

		switch {
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			var existing int64
			if err := tx.Model(&domain.WorkOrder{}).
				Where("created_at >= ? AND created_at < ?", dayStart.UTC(), dayEnd.UTC()).
				Count(&existing).Error; err != nil {
				return fmt.Errorf("failed to count work orders for %s: %w", scope, err)
			}
			next = int(existing) + 1
			seq = domain.NumberSequence{Scope: scope, LastSequence: next}
			if err := tx.Create(&seq).Error; err != nil {
				return fmt.Errorf("failed to create number sequence: %w", err)
			}
		case result.Error != nil:
			return fmt.Errorf("failed to get number sequence: %w", result.Error)
		default:
			next = seq.LastSequence + 1
			if err := tx.Model(&seq).Updates(map[string]interface{}{
				"last_sequence": next,
				"updated_at":    time.Now().UTC(),
			}).Error; err != nil {
				return fmt.Errorf("failed to update number sequence: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// GetCurrentSequence returns the last issued sequence for a scope, or 0
func (r *NumberSequenceRepository) GetCurrentSequence(ctx context.Context, scope string) (int, error) {
	var seq domain.NumberSequence
	result := r.db.WithContext(ctx).Where("scope = ?", scope).First(&seq)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if result.Error != nil {
		return 0, fmt.Errorf("failed to get number sequence: %w", result.Error)
	}
	return seq.LastSequence, nil
}
