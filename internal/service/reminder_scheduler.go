package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"medikeep/config"
	"medikeep/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrReminderNotFound = errors.New("reminder not found or already resolved")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)

// ReminderAction is how a fired reminder was resolved by the user.
type ReminderAction string

const (
	ReminderActionTaken     ReminderAction = "taken"
	ReminderActionSnoozed   ReminderAction = "snoozed"
	ReminderActionDismissed ReminderAction = "dismissed"
)

// ReminderNotification is pushed to the user when a reminder fires.
type ReminderNotification struct {
	Key            string    `json:"key"`
	MedicationID   uuid.UUID `json:"medication_id"`
	MedicationName string    `json:"medication_name"`
	Dosage         string    `json:"dosage,omitempty"`
	ScheduledTime  string    `json:"scheduled_time"`
	IsRetry        bool      `json:"is_retry"`
	Actions        []string  `json:"actions"`
	FiredAt        time.Time `json:"fired_at"`
}

// Notifier delivers a fired reminder to the user's device(s).
type Notifier interface {
	Notify(userID uuid.UUID, notification ReminderNotification)
}

// AdherenceSink persists the terminal outcome of a dose reminder.
type AdherenceSink interface {
	LogDose(ctx context.Context, userID, medicationID uuid.UUID, medicationName, scheduledTime string, action entity.AdherenceAction) error
}

// reminder is one armed or fired (medication, time-of-day) occurrence.
type reminder struct {
	key            string
	userID         uuid.UUID
	medicationID   uuid.UUID
	medicationName string
	dosage         string
	scheduledTime  string
	firesAt        time.Time
	isSnooze       bool
	isRetry        bool

	timer      *time.Timer // armed state
	retryTimer *time.Timer // fired state, pending the single retry
	fired      bool
	retried    bool
	firedAt    time.Time
}

// ReminderScheduler arms a timer for each (medication, time-of-day) pair and
// routes firings through the Notifier. All state is owned by this instance;
// Stop cancels every outstanding timer.
//
// A registry keyed by medication+date+time prevents duplicate arming when the
// same list is synced twice. Syncing a changed list tears down the user's
// previous timers and rebuilds, so stale reminders never fire.
type ReminderScheduler struct {
	log      *logrus.Logger
	notifier Notifier
	sink     AdherenceSink

	snoozeDelay time.Duration
	retryDelay  time.Duration
	now         func() time.Time

	mu        sync.Mutex
	reminders map[string]*reminder
	byUser    map[uuid.UUID]map[string]struct{}
	stopped   bool
}

func NewReminderScheduler(cfg config.ReminderConfig, notifier Notifier, sink AdherenceSink, log *logrus.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		log:         log,
		notifier:    notifier,
		sink:        sink,
		snoozeDelay: cfg.SnoozeDelay,
		retryDelay:  cfg.RetryDelay,
		now:         time.Now,
		reminders:   make(map[string]*reminder),
		byUser:      make(map[uuid.UUID]map[string]struct{}),
	}
}

// Sync rebuilds the reminder set for one user from their current medication
// list. Calling it twice with the same list is idempotent. It must only be
// called for the authenticated owner of the list: a caregiver viewing a
// dependent's schedule does not arm reminders.
func (s *ReminderScheduler) Sync(userID uuid.UUID, medications []entity.Medication) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return 0
	}

	s.cancelUserLocked(userID)

	armed := 0
	for i := range medications {
		med := &medications[i]
		if med.UserID != userID {
			continue
		}
		for _, timeStr := range med.Times {
			firesAt, err := s.nextOccurrence(timeStr)
			if err != nil {
				s.log.Warnf("Skipping reminder with invalid time %q for medication %s: %+v", timeStr, med.ID, err)
				continue
			}
			r := &reminder{
				key:            reminderKey(med.ID, firesAt, timeStr),
				userID:         userID,
				medicationID:   med.ID,
				medicationName: med.Name,
				dosage:         med.Dosage,
				scheduledTime:  timeStr,
				firesAt:        firesAt,
			}
			if s.armLocked(r) {
				armed++
			}
		}
	}

	s.log.Infof("Reminder sync for user %s: %d timers armed", userID, armed)
	return armed
}

// Cancel tears down all of a user's armed and pending reminders. Called when
// the medication list changes hands (teardown on unmount in the original UI).
func (s *ReminderScheduler) Cancel(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelUserLocked(userID)
}

// Ack resolves a fired reminder. Taken and dismissed are terminal and write
// an adherence log entry (dismissal counts as skipped); snooze rearms the
// same medication and time 15 minutes out under a fresh key.
func (s *ReminderScheduler) Ack(ctx context.Context, userID uuid.UUID, key string, action ReminderAction) error {
	s.mu.Lock()
	r, ok := s.reminders[key]
	if !ok || r.userID != userID || !r.fired {
		s.mu.Unlock()
		return ErrReminderNotFound
	}
	s.removeLocked(r)

	var snoozed *reminder
	if action == ReminderActionSnoozed {
		snoozed = &reminder{
			key:            fmt.Sprintf("%s-snooze-%d", r.key, s.now().UnixNano()),
			userID:         r.userID,
			medicationID:   r.medicationID,
			medicationName: r.medicationName,
			dosage:         r.dosage,
			scheduledTime:  r.scheduledTime,
			firesAt:        s.now().Add(s.snoozeDelay),
			isSnooze:       true,
		}
		s.armLocked(snoozed)
	}
	s.mu.Unlock()

	switch action {
	case ReminderActionTaken:
		return s.sink.LogDose(ctx, r.userID, r.medicationID, r.medicationName, r.scheduledTime, entity.AdherenceActionTaken)
	case ReminderActionDismissed:
		return s.sink.LogDose(ctx, r.userID, r.medicationID, r.medicationName, r.scheduledTime, entity.AdherenceActionSkipped)
	case ReminderActionSnoozed:
		s.log.Infof("Reminder %s snoozed until %s", r.key, snoozed.firesAt.Format(time.RFC3339))
		return nil
	default:
		return fmt.Errorf("unknown reminder action %q", action)
	}
}

// PendingView is a fired reminder awaiting a response.
type PendingView struct {
	Key            string    `json:"key"`
	MedicationID   uuid.UUID `json:"medication_id"`
	MedicationName string    `json:"medication_name"`
	ScheduledTime  string    `json:"scheduled_time"`
	FiredAt        time.Time `json:"fired_at"`
}

// Pending lists a user's fired, unresolved reminders.
func (s *ReminderScheduler) Pending(userID uuid.UUID) []PendingView {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := []PendingView{}
	for key := range s.byUser[userID] {
		r := s.reminders[key]
		if r == nil || !r.fired {
			continue
		}
		views = append(views, PendingView{
			Key:            r.key,
			MedicationID:   r.medicationID,
			MedicationName: r.medicationName,
			ScheduledTime:  r.scheduledTime,
			FiredAt:        r.firedAt,
		})
	}
	return views
}

// Stop cancels every outstanding timer. Safe to call multiple times.
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	for _, r := range s.reminders {
		stopReminderTimers(r)
	}
	s.reminders = make(map[string]*reminder)
	s.byUser = make(map[uuid.UUID]map[string]struct{})
	s.log.Info("ReminderScheduler stopped")
}

// armLocked registers a reminder and starts its timer. Duplicate keys are
// ignored, which makes re-registration idempotent. Caller holds s.mu.
func (s *ReminderScheduler) armLocked(r *reminder) bool {
	if s.stopped {
		return false
	}
	if _, exists := s.reminders[r.key]; exists {
		return false
	}
	delay := r.firesAt.Sub(s.now())
	if delay <= 0 {
		return false
	}

	s.reminders[r.key] = r
	if s.byUser[r.userID] == nil {
		s.byUser[r.userID] = make(map[string]struct{})
	}
	s.byUser[r.userID][r.key] = struct{}{}

	key := r.key
	r.timer = time.AfterFunc(delay, func() { s.fire(key) })
	return true
}

// fire transitions a reminder from armed to pending and notifies the user.
// The first firing of a scheduled reminder arms exactly one retry; snoozes
// and retries never do.
func (s *ReminderScheduler) fire(key string) {
	s.mu.Lock()
	r, ok := s.reminders[key]
	if !ok || s.stopped {
		s.mu.Unlock()
		return
	}
	r.fired = true
	r.firedAt = s.now()
	if !r.isSnooze && !r.isRetry {
		r.retryTimer = time.AfterFunc(s.retryDelay, func() { s.retryFire(key) })
	}
	notification := s.notificationLocked(r, false)
	s.mu.Unlock()

	s.notifier.Notify(r.userID, notification)
}

// retryFire re-delivers a fired reminder that got no response within the
// retry window. Marked as a retry so it cannot arm another retry.
func (s *ReminderScheduler) retryFire(key string) {
	s.mu.Lock()
	r, ok := s.reminders[key]
	if !ok || s.stopped || r.retried {
		s.mu.Unlock()
		return
	}
	r.retried = true
	r.retryTimer = nil
	notification := s.notificationLocked(r, true)
	s.mu.Unlock()

	s.log.Infof("Retrying reminder %s for medication %s", key, r.medicationName)
	s.notifier.Notify(r.userID, notification)
}

func (s *ReminderScheduler) notificationLocked(r *reminder, isRetry bool) ReminderNotification {
	return ReminderNotification{
		Key:            r.key,
		MedicationID:   r.medicationID,
		MedicationName: r.medicationName,
		Dosage:         r.dosage,
		ScheduledTime:  r.scheduledTime,
		IsRetry:        isRetry,
		Actions:        []string{string(ReminderActionTaken), string(ReminderActionSnoozed)},
		FiredAt:        r.firedAt,
	}
}

func (s *ReminderScheduler) cancelUserLocked(userID uuid.UUID) {
	for key := range s.byUser[userID] {
		if r, ok := s.reminders[key]; ok {
			stopReminderTimers(r)
			delete(s.reminders, key)
		}
	}
	delete(s.byUser, userID)
}

func (s *ReminderScheduler) removeLocked(r *reminder) {
	stopReminderTimers(r)
	delete(s.reminders, r.key)
	if keys := s.byUser[r.userID]; keys != nil {
		delete(keys, r.key)
		if len(keys) == 0 {
			delete(s.byUser, r.userID)
		}
	}
}

func stopReminderTimers(r *reminder) {
	if r.timer != nil {
		r.timer.Stop()
	}
	if r.retryTimer != nil {
		r.retryTimer.Stop()
	}
}

// nextOccurrence computes today's wall-clock occurrence of a time-of-day
// string. Both 24-hour ("21:30") and 12-hour ("09:30 PM") forms are accepted.
func (s *ReminderScheduler) nextOccurrence(timeStr string) (time.Time, error) {
	hour, minute, err := ParseTimeOfDay(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), nil
}

// ParseTimeOfDay parses "HH:MM" or "hh:MM AM/PM" into clock components.
func ParseTimeOfDay(timeStr string) (hour, minute int, err error) {
	for _, layout := range []string{"15:04", "3:04 PM", "03:04 PM"} {
		if t, perr := time.Parse(layout, timeStr); perr == nil {
			return t.Hour(), t.Minute(), nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, timeStr)
}

func reminderKey(medicationID uuid.UUID, firesAt time.Time, timeStr string) string {
	return fmt.Sprintf("%s-%s-%s", medicationID, firesAt.Format("2006-01-02"), timeStr)
}
