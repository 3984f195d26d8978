package repository

import (
	"context"
	"sort"

	"study-tracker/models"
	"study-tracker/storage"
)

// GetTimeLogs returns the time logs for date ordered by start time
func (r *Repository) GetTimeLogs(ctx context.Context, date string) []models.TimeLogEntry {
	logs := orEmpty(listAll[models.TimeLogEntry](r, ctx, "time logs", storage.Where("date", date), colTimeLogs))
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].StartTime < logs[j].StartTime
	})
	return logs
}

func (r *Repository) SaveTimeLog(ctx context.Context, entry *models.TimeLogEntry) error {
	if err := r.validator.Validate(entry); err != nil {
		return err
	}
	return r.write(ctx, "save time log", func(user *models.AuthUser) error {
		if entry.DurationMinutes == 0 && entry.EndTime > entry.StartTime {
			entry.DurationMinutes = int((entry.EndTime - entry.StartTime) / 60000)
		}
		return r.save(ctx, userPath(user, colTimeLogs, entry.ID), entry)
	})
}

func (r *Repository) DeleteTimeLog(ctx context.Context, id string) error {
	return r.write(ctx, "delete time log", func(user *models.AuthUser) error {
		return r.store.Delete(ctx, userPath(user, colTimeLogs, id))
	})
}

// GetFMGEEntries returns all FMGE entries ordered by subject, then id
func (r *Repository) GetFMGEEntries(ctx context.Context) []models.FMGEEntry {
	entries := orEmpty(listAll[models.FMGEEntry](r, ctx, "fmge entries", storage.Query{}, colFMGE))
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Subject != entries[j].Subject {
			return entries[i].Subject < entries[j].Subject
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}

func (r *Repository) SaveFMGEEntry(ctx context.Context, entry *models.FMGEEntry) error {
	if err := r.validator.Validate(entry); err != nil {
		return err
	}
	return r.write(ctx, "save fmge entry", func(user *models.AuthUser) error {
		return r.save(ctx, userPath(user, colFMGE, entry.ID), entry)
	})
}

func (r *Repository) DeleteFMGEEntry(ctx context.Context, id string) error {
	return r.write(ctx, "delete fmge entry", func(user *models.AuthUser) error {
		return r.store.Delete(ctx, userPath(user, colFMGE, id))
	})
}

// GetStudyEntries returns the study entries for date ordered by time of day
func (r *Repository) GetStudyEntries(ctx context.Context, date string) []models.StudyEntry {
	entries := orEmpty(listAll[models.StudyEntry](r, ctx, "study entries", storage.Where("date", date), colStudyEntries))
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time < entries[j].Time
	})
	return entries
}

func (r *Repository) SaveStudyEntry(ctx context.Context, entry *models.StudyEntry) error {
	if err := r.validator.Validate(entry); err != nil {
		return err
	}
	return r.write(ctx, "save study entry", func(user *models.AuthUser) error {
		return r.save(ctx, userPath(user, colStudyEntries, entry.ID), entry)
	})
}

func (r *Repository) DeleteStudyEntry(ctx context.Context, id string) error {
	return r.write(ctx, "delete study entry", func(user *models.AuthUser) error {
		return r.store.Delete(ctx, userPath(user, colStudyEntries, id))
	})
}
