package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/helper-marketplace/internal/models"
	"github.com/Eursukkul/helper-marketplace/internal/repository"
	"github.com/jinzhu/now"
)

const (
	DefaultSlotDuration = 2 * time.Hour

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
	endOfDay   = "24:00"
)

type ConflictPolicy string

const (
	// ConflictByDate treats any committed slot on the date as a conflict.
	ConflictByDate ConflictPolicy = "date"
	// ConflictByOverlap only rejects slots whose time ranges intersect.
	ConflictByOverlap ConflictPolicy = "overlap"
)

func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch ConflictPolicy(s) {
	case ConflictByDate, ConflictByOverlap:
		return ConflictPolicy(s), nil
	}
	return "", fmt.Errorf("unknown schedule conflict policy %q", s)
}

// SlotWindow is the calendar position of a booking's slot.
type SlotWindow struct {
	Date  string
	Start string
	End   string
}

// ScheduleLedger keeps workers' calendars. Its methods run against whatever
// repository they are given, so the caller decides the transaction boundary.
type ScheduleLedger struct {
	location *time.Location
	duration time.Duration
	policy   ConflictPolicy
}

func NewScheduleLedger(location *time.Location, duration time.Duration, policy ConflictPolicy) *ScheduleLedger {
	if location == nil {
		location = time.UTC
	}
	if duration <= 0 {
		duration = DefaultSlotDuration
	}
	if policy == "" {
		policy = ConflictByDate
	}
	return &ScheduleLedger{location: location, duration: duration, policy: policy}
}

// Window places a scheduled start on the calendar. A slot that would run past
// midnight is cut at the end of its day.
func (l *ScheduleLedger) Window(at time.Time) SlotWindow {
	start := at.In(l.location)
	end := start.Add(l.duration)

	w := SlotWindow{
		Date:  start.Format(dateLayout),
		Start: start.Format(timeLayout),
		End:   end.Format(timeLayout),
	}
	if end.Format(dateLayout) != w.Date {
		w.End = endOfDay
	}
	return w
}

func (l *ScheduleLedger) HasConflict(ctx context.Context, repo repository.ScheduleRepository, workerID string, w SlotWindow) (bool, error) {
	slots, err := repo.FindUnavailable(ctx, workerID, w.Date)
	if err != nil {
		return false, storageError("find schedule slots", err)
	}
	if l.policy == ConflictByDate {
		return len(slots) > 0, nil
	}
	for i := range slots {
		if slots[i].Overlaps(w.Start, w.End) {
			return true, nil
		}
	}
	return false, nil
}

// Reserve records an unavailable slot linked to the booking.
func (l *ScheduleLedger) Reserve(ctx context.Context, repo repository.ScheduleRepository, workerID string, w SlotWindow, bookingID uint) (*models.ScheduleSlot, error) {
	slot := &models.ScheduleSlot{
		WorkerID:    workerID,
		Date:        w.Date,
		StartTime:   w.Start,
		EndTime:     w.End,
		IsAvailable: false,
		BookingID:   &bookingID,
	}
	if err := repo.Create(ctx, slot); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrScheduleConflict
		}
		return nil, storageError("reserve schedule slot", err)
	}
	return slot, nil
}

// Release frees whatever slot the booking holds for the worker, looked up by
// booking rather than by date. Releasing a booking without a slot is a no-op.
func (l *ScheduleLedger) Release(ctx context.Context, repo repository.ScheduleRepository, workerID string, bookingID uint) error {
	if _, err := repo.ReleaseByBooking(ctx, workerID, bookingID); err != nil {
		return storageError("release schedule slot", err)
	}
	return nil
}

// Week lists the worker's slots for the Monday-based week containing weekOf.
func (l *ScheduleLedger) Week(ctx context.Context, repo repository.ScheduleRepository, workerID string, weekOf time.Time) ([]models.ScheduleSlot, error) {
	cal := (&now.Config{WeekStartDay: time.Monday, TimeLocation: l.location}).With(weekOf.In(l.location))
	from := cal.BeginningOfWeek().Format(dateLayout)
	to := cal.EndOfWeek().Format(dateLayout)

	slots, err := repo.ListByWorker(ctx, workerID, from, to)
	if err != nil {
		return nil, storageError("list schedule slots", err)
	}
	return slots, nil
}
