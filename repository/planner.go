package repository

import (
	"context"

	"study-tracker/models"
	"study-tracker/storage"
)

func (r *Repository) GetDayPlan(ctx context.Context, date string) *models.DayPlan {
	return getSingle[models.DayPlan](r, ctx, "day plan", colDayPlans, date)
}

// SaveDayPlan overwrites the plan for plan.Date. The date is validated
// before anything is sent to the store.
func (r *Repository) SaveDayPlan(ctx context.Context, plan *models.DayPlan) error {
	if err := r.validator.Validate(plan); err != nil {
		return err
	}
	return r.write(ctx, "save day plan", func(user *models.AuthUser) error {
		if plan.CreatedAt == nil {
			now := r.now().UTC()
			plan.CreatedAt = &now
		}
		return r.save(ctx, userPath(user, colDayPlans, plan.Date), plan)
	})
}

func (r *Repository) DeleteDayPlan(ctx context.Context, date string) error {
	return r.write(ctx, "delete day plan", func(user *models.AuthUser) error {
		return r.store.Delete(ctx, userPath(user, colDayPlans, date))
	})
}

func (r *Repository) GetDailyTracker(ctx context.Context, date string) *models.DailyTracker {
	return getSingle[models.DailyTracker](r, ctx, "daily tracker", colDailyTrackers, date)
}

// SaveDailyTracker merges tracker into the stored tracker for its date
func (r *Repository) SaveDailyTracker(ctx context.Context, tracker *models.DailyTracker) error {
	if err := r.validator.Validate(tracker); err != nil {
		return err
	}
	return r.write(ctx, "save daily tracker", func(user *models.AuthUser) error {
		now := r.now().UTC()
		tracker.UpdatedAt = &now
		return r.save(ctx, userPath(user, colDailyTrackers, tracker.Date), tracker, storage.Merge())
	})
}
