package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"medikeep/config"
	"medikeep/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type capturingNotifier struct {
	ch chan ReminderNotification
}

func newCapturingNotifier() *capturingNotifier {
	return &capturingNotifier{ch: make(chan ReminderNotification, 16)}
}

func (n *capturingNotifier) Notify(_ uuid.UUID, notification ReminderNotification) {
	n.ch <- notification
}

func (n *capturingNotifier) wait(t *testing.T) ReminderNotification {
	t.Helper()
	select {
	case notification := <-n.ch:
		return notification
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return ReminderNotification{}
	}
}

func (n *capturingNotifier) expectNone(t *testing.T, within time.Duration) {
	t.Helper()
	select {
	case notification := <-n.ch:
		t.Fatalf("unexpected notification %q", notification.Key)
	case <-time.After(within):
	}
}

type loggedDose struct {
	userID        uuid.UUID
	medicationID  uuid.UUID
	scheduledTime string
	action        entity.AdherenceAction
}

type capturingSink struct {
	mu    sync.Mutex
	doses []loggedDose
}

func (s *capturingSink) LogDose(_ context.Context, userID, medicationID uuid.UUID, _ string, scheduledTime string, action entity.AdherenceAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doses = append(s.doses, loggedDose{userID: userID, medicationID: medicationID, scheduledTime: scheduledTime, action: action})
	return nil
}

func (s *capturingSink) logged(t *testing.T) []loggedDose {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]loggedDose, len(s.doses))
	copy(out, s.doses)
	return out
}

// newTestScheduler pins the clock a moment before 09:00 so a "09:00"
// reminder fires almost immediately on a real timer.
func newTestScheduler(notifier Notifier, sink AdherenceSink) *ReminderScheduler {
	s := NewReminderScheduler(config.ReminderConfig{
		SnoozeDelay: 50 * time.Millisecond,
		RetryDelay:  50 * time.Millisecond,
	}, notifier, sink, logrus.New())
	base := time.Date(2026, 3, 14, 8, 59, 59, int(950*time.Millisecond), time.UTC)
	s.now = func() time.Time { return base }
	return s
}

func testMedication(userID uuid.UUID, times ...string) entity.Medication {
	return entity.Medication{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "Amoxicillin",
		Dosage: "500mg",
		Times:  times,
	}
}

func TestScheduler_Sync_ArmsOneTimerPerTime(t *testing.T) {
	notifier := newCapturingNotifier()
	s := newTestScheduler(notifier, &capturingSink{})
	defer s.Stop()

	userID := uuid.New()
	med := testMedication(userID, "09:00", "21:00")

	armed := s.Sync(userID, []entity.Medication{med})
	require.Equal(t, 2, armed)
}

func TestScheduler_Sync_Resync_IsIdempotent(t *testing.T) {
	notifier := newCapturingNotifier()
	s := newTestScheduler(notifier, &capturingSink{})
	defer s.Stop()

	userID := uuid.New()
	meds := []entity.Medication{testMedication(userID, "09:00")}

	require.Equal(t, 1, s.Sync(userID, meds))
	require.Equal(t, 1, s.Sync(userID, meds))

	s.mu.Lock()
	require.Len(t, s.reminders, 1)
	s.mu.Unlock()
}

func TestScheduler_Sync_SkipsMedicationsOfOtherUsers(t *testing.T) {
	notifier := newCapturingNotifier()
	s := newTestScheduler(notifier, &capturingSink{})
	defer s.Stop()

	userID := uuid.New()
	other := testMedication(uuid.New(), "09:00")

	require.Equal(t, 0, s.Sync(userID, []entity.Medication{other}))
}

func TestScheduler_Sync_SkipsPastAndInvalidTimes(t *testing.T) {
	notifier := newCapturingNotifier()
	s := newTestScheduler(notifier, &capturingSink{})
	defer s.Stop()

	userID := uuid.New()
	med := testMedication(userID, "08:00", "not-a-time", "09:00")

	require.Equal(t, 1, s.Sync(userID, []entity.Medication{med}))
}

func TestScheduler_Fire_NotifiesAndRetriesOnce(t *testing.T) {
	notifier := newCapturingNotifier()
	s := newTestScheduler(notifier, &capturingSink{})
	defer s.Stop()

	userID := uuid.New()
	med := testMedication(userID, "09:00")
	require.Equal(t, 1, s.Sync(userID, []entity.Medication{med}))

	first := notifier.wait(t)
	require.False(t, first.IsRetry)
	require.Equal(t, med.ID, first.MedicationID)
	require.Equal(t, "09:00", first.ScheduledTime)

	retry := notifier.wait(t)
	require.True(t, retry.IsRetry)
	require.Equal(t, first.Key, retry.Key)

	// Exactly one retry; nothing further arrives.
	notifier.expectNone(t, 150*time.Millisecond)

	pending := s.Pending(userID)
	require.Len(t, pending, 1)
	require.Equal(t, first.Key, pending[0].Key)
}

func TestScheduler_Ack_Taken_LogsDoseAndResolves(t *testing.T) {
	notifier := newCapturingNotifier()
	sink := &capturingSink{}
	s := newTestScheduler(notifier, sink)
	defer s.Stop()

	userID := uuid.New()
	med := testMedication(userID, "09:00")
	s.Sync(userID, []entity.Medication{med})

	fired := notifier.wait(t)

	require.NoError(t, s.Ack(context.Background(), userID, fired.Key, ReminderActionTaken))

	doses := sink.logged(t)
	require.Len(t, doses, 1)
	require.Equal(t, entity.AdherenceActionTaken, doses[0].action)
	require.Equal(t, med.ID, doses[0].medicationID)

	require.Empty(t, s.Pending(userID))
	require.ErrorIs(t, s.Ack(context.Background(), userID, fired.Key, ReminderActionTaken), ErrReminderNotFound)
}

func TestScheduler_Ack_Dismissed_LogsSkipped(t *testing.T) {
	notifier := newCapturingNotifier()
	sink := &capturingSink{}
	s := newTestScheduler(notifier, sink)
	defer s.Stop()

	userID := uuid.New()
	med := testMedication(userID, "09:00")
	s.Sync(userID, []entity.Medication{med})

	fired := notifier.wait(t)
	require.NoError(t, s.Ack(context.Background(), userID, fired.Key, ReminderActionDismissed))

	doses := sink.logged(t)
	require.Len(t, doses, 1)
	require.Equal(t, entity.AdherenceActionSkipped, doses[0].action)
}

func TestScheduler_Ack_Snoozed_RearmsUnderFreshKey(t *testing.T) {
	notifier := newCapturingNotifier()
	sink := &capturingSink{}
	s := newTestScheduler(notifier, sink)
	defer s.Stop()

	userID := uuid.New()
	med := testMedication(userID, "09:00")
	s.Sync(userID, []entity.Medication{med})

	fired := notifier.wait(t)
	require.NoError(t, s.Ack(context.Background(), userID, fired.Key, ReminderActionSnoozed))

	// Snoozing is not a dose outcome.
	require.Empty(t, sink.logged(t))

	snoozeFired := notifier.wait(t)
	require.NotEqual(t, fired.Key, snoozeFired.Key)
	require.Contains(t, snoozeFired.Key, fired.Key)
	require.False(t, snoozeFired.IsRetry)

	// A snooze firing never arms a retry.
	notifier.expectNone(t, 150*time.Millisecond)
}

func TestScheduler_Ack_BeforeFiring_ReturnsNotFound(t *testing.T) {
	notifier := newCapturingNotifier()
	s := newTestScheduler(notifier, &capturingSink{})

	userID := uuid.New()
	med := testMedication(userID, "09:00")
	s.Sync(userID, []entity.Medication{med})

	s.mu.Lock()
	var key string
	for k := range s.reminders {
		key = k
	}
	s.mu.Unlock()

	require.ErrorIs(t, s.Ack(context.Background(), userID, key, ReminderActionTaken), ErrReminderNotFound)
	s.Stop()
}

func TestScheduler_Ack_WrongUser_ReturnsNotFound(t *testing.T) {
	notifier := newCapturingNotifier()
	s := newTestScheduler(notifier, &capturingSink{})
	defer s.Stop()

	userID := uuid.New()
	med := testMedication(userID, "09:00")
	s.Sync(userID, []entity.Medication{med})

	fired := notifier.wait(t)
	require.ErrorIs(t, s.Ack(context.Background(), uuid.New(), fired.Key, ReminderActionTaken), ErrReminderNotFound)
}

func TestScheduler_Cancel_DropsPendingReminders(t *testing.T) {
	notifier := newCapturingNotifier()
	s := newTestScheduler(notifier, &capturingSink{})
	defer s.Stop()

	userID := uuid.New()
	med := testMedication(userID, "09:00")
	s.Sync(userID, []entity.Medication{med})

	fired := notifier.wait(t)
	s.Cancel(userID)

	require.Empty(t, s.Pending(userID))
	require.ErrorIs(t, s.Ack(context.Background(), userID, fired.Key, ReminderActionTaken), ErrReminderNotFound)
}

func TestScheduler_Stop_SilencesEverything(t *testing.T) {
	notifier := newCapturingNotifier()
	s := newTestScheduler(notifier, &capturingSink{})

	userID := uuid.New()
	med := testMedication(userID, "09:00")
	s.Sync(userID, []entity.Medication{med})
	s.Stop()

	notifier.expectNone(t, 150*time.Millisecond)
	require.Equal(t, 0, s.Sync(userID, []entity.Medication{med}))
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"09:30", 9, 30, true},
		{"21:05", 21, 5, true},
		{"9:30 PM", 21, 30, true},
		{"09:30 PM", 21, 30, true},
		{"12:00 AM", 0, 0, true},
		{"noon", 0, 0, false},
		{"", 0, 0, false},
		{"25:00", 0, 0, false},
	}

	for _, tc := range cases {
		hour, minute, err := ParseTimeOfDay(tc.in)
		if !tc.ok {
			require.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.hour, hour, tc.in)
		require.Equal(t, tc.minute, minute, tc.in)
	}
}
