package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ericsromero/planner/internal/domain"
	"github.com/ericsromero/planner/internal/repo"
)

// ActivityService implements business logic for Activity operations.
// It holds the trip repo as well because every activity mutation must verify
// the parent trip exists and validate occurs_at against the trip's window.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// Create validates the activity against its trip's date window, then persists.
// Returns domain.ErrNotFound if the trip does not exist, domain.ErrValidation
// if the title is empty or occurs_at falls outside [starts_at, ends_at].
func (s *ActivityService) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, activity.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	if err := validateActivity(trip, activity); err != nil {
		return domain.Activity{}, err
	}
	result, err := s.activities.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// ListDays returns the trip's activities grouped by calendar day, with one
// entry per day of the trip from starts_at through ends_at — days without
// activities appear with an empty list so the client can render every slot.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ActivityService) ListDays(ctx context.Context, tripID uuid.UUID) ([]domain.DayActivities, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListDays: %w", err)
	}
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListDays: %w", err)
	}

	byDay := make(map[time.Time][]domain.Activity)
	for _, a := range activities {
		day := truncateToDay(a.OccursAt)
		byDay[day] = append(byDay[day], a)
	}

	var days []domain.DayActivities
	last := truncateToDay(trip.EndsAt)
	for day := truncateToDay(trip.StartsAt); !day.After(last); day = day.AddDate(0, 0, 1) {
		entry := domain.DayActivities{Date: day, Activities: byDay[day]}
		if entry.Activities == nil {
			entry.Activities = []domain.Activity{}
		}
		days = append(days, entry)
	}
	return days, nil
}

// Update validates and persists changes to an existing activity.
// The same window rules as Create apply.
func (s *ActivityService) Update(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, activity.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	if err := validateActivity(trip, activity); err != nil {
		return domain.Activity{}, err
	}
	result, err := s.activities.Update(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an activity by ID, scoped to the given trip.
// Returns domain.ErrNotFound if the activity does not exist under that trip.
func (s *ActivityService) Delete(ctx context.Context, tripID, activityID uuid.UUID) error {
	if err := s.activities.Delete(ctx, tripID, activityID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

// validateActivity enforces the rules common to Create and Update.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - OccursAt must lie in the closed interval [trip.StartsAt, trip.EndsAt].
func validateActivity(trip domain.Trip, activity domain.Activity) error {
	if strings.TrimSpace(activity.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if activity.OccursAt.Before(trip.StartsAt) || activity.OccursAt.After(trip.EndsAt) {
		return fmt.Errorf("%w: activity date is outside the trip window", domain.ErrValidation)
	}
	return nil
}

// truncateToDay drops the time-of-day component, keeping the date in UTC.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
