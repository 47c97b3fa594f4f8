package court

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

const threshold = 2 * time.Minute

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(DefaultScenario().Tasks, threshold)
}

func triggered(t *testing.T, key TaskKey, at time.Time) *Registry {
	t.Helper()
	r := newTestRegistry(t)
	ok, err := r.Trigger(key, at)
	require.NoError(t, err)
	require.True(t, ok)
	return r
}

func TestRegistry_NewTasksArePending(t *testing.T) {
	r := newTestRegistry(t)

	tasks := r.Tasks()
	require.Len(t, tasks, 4)
	require.Equal(t, []TaskKey{TaskAlt, TaskValidation, TaskLogin, TaskDatabase},
		[]TaskKey{tasks[0].Key, tasks[1].Key, tasks[2].Key, tasks[3].Key})
	for _, task := range tasks {
		require.Equal(t, StatusPending, task.Status)
		require.False(t, task.Triggered())
		require.Nil(t, task.UrgentAt)
		require.Nil(t, task.CourtAt)
	}
}

func TestRegistry_TickBecomesUrgent(t *testing.T) {
	r := triggered(t, TaskAlt, t0)

	fired := r.Tick(t0.Add(threshold + time.Millisecond))
	require.Len(t, fired, 1)
	require.Equal(t, StatusPending, fired[0].From)
	require.Equal(t, StatusUrgent, fired[0].To)

	source, text := fired[0].Message()
	require.Equal(t, SourceAgile, source)
	require.Equal(t, "URGENT: Fix alt in img1", text)
	require.Equal(t, EventUrgent, fired[0].EventType())
	require.Equal(t, map[string]any{"task": "alt"}, fired[0].EventPayload())

	task, err := r.Get(TaskAlt)
	require.NoError(t, err)
	require.Equal(t, StatusUrgent, task.Status)
	require.Equal(t, t0.Add(threshold+time.Millisecond), *task.UrgentAt)
	require.Nil(t, task.CourtAt)
}

func TestRegistry_TickBeforeThresholdDoesNothing(t *testing.T) {
	r := triggered(t, TaskAlt, t0)
	require.Empty(t, r.Tick(t0.Add(threshold-time.Millisecond)))

	task, _ := r.Get(TaskAlt)
	require.Equal(t, StatusPending, task.Status)
}

func TestRegistry_TickBecomesCourt(t *testing.T) {
	r := triggered(t, TaskAlt, t0)
	r.Tick(t0.Add(threshold + time.Millisecond))

	fired := r.Tick(t0.Add(2*threshold + time.Millisecond))
	require.Len(t, fired, 1)
	require.Equal(t, StatusUrgent, fired[0].From)
	require.Equal(t, StatusCourt, fired[0].To)

	source, text := fired[0].Message()
	require.Equal(t, SourceSystem, source)
	require.Equal(t, `COURT: You ignored "Fix alt in img1" – fined for breaking Disability Act.`, text)
	require.Contains(t, text, "Disability Act")
	require.Equal(t, map[string]any{"task": "alt", "law": "Disability Act"}, fired[0].EventPayload())

	task, _ := r.Get(TaskAlt)
	require.Equal(t, StatusCourt, task.Status)
	require.NotNil(t, task.UrgentAt)
	require.Equal(t, t0.Add(2*threshold+time.Millisecond), *task.CourtAt)
	require.True(t, r.AnyCourt())

	require.Empty(t, r.Tick(t0.Add(10*threshold)), "court is terminal")
}

func TestRegistry_LongGapSkipsThroughUrgent(t *testing.T) {
	r := triggered(t, TaskLogin, t0)

	fired := r.Tick(t0.Add(3 * threshold))
	require.Len(t, fired, 2)
	require.Equal(t, StatusUrgent, fired[0].To)
	require.Equal(t, StatusUrgent, fired[1].From)
	require.Equal(t, StatusCourt, fired[1].To)

	_, text := fired[1].Message()
	require.Equal(t, `COURT: You ignored "Fix user login" – declared bankruptcy (no one can use your app).`, text)
	require.Equal(t, map[string]any{"task": "login", "law": nil}, fired[1].EventPayload())

	task, _ := r.Get(TaskLogin)
	require.Equal(t, *task.UrgentAt, *task.CourtAt)
}

func TestRegistry_UntriggeredNeverEscalates(t *testing.T) {
	r := newTestRegistry(t)
	require.Empty(t, r.Tick(t0.Add(24*time.Hour)))
}

func TestRegistry_Fix(t *testing.T) {
	r := triggered(t, TaskValidation, t0)
	r.Tick(t0.Add(threshold))

	tr, changed, err := r.Fix(TaskValidation, t0.Add(threshold+time.Second))
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, StatusUrgent, tr.From)
	require.Equal(t, StatusFixed, tr.To)
	_, text := tr.Message()
	require.Equal(t, "Resolved: Fix input validation", text)

	task, _ := r.Get(TaskValidation)
	require.Equal(t, StatusFixed, task.Status)
	require.NotNil(t, task.UrgentAt, "urgent stamp is never cleared")

	require.Empty(t, r.Tick(t0.Add(10*threshold)), "fixed tasks do not escalate")
}

func TestRegistry_FixIsIdempotent(t *testing.T) {
	r := newTestRegistry(t)

	_, changed, err := r.Fix(TaskLogin, t0)
	require.NoError(t, err)
	require.True(t, changed)

	before := r.Tasks()
	_, changed, err = r.Fix(TaskLogin, t0.Add(time.Minute))
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, before, r.Tasks())
}

func TestRegistry_FixRejectsCourt(t *testing.T) {
	r := triggered(t, TaskDatabase, t0)
	r.Tick(t0.Add(2 * threshold))

	_, changed, err := r.Fix(TaskDatabase, t0.Add(2*threshold+time.Second))
	require.ErrorIs(t, err, ErrTaskInCourt)
	require.False(t, changed)

	task, _ := r.Get(TaskDatabase)
	require.Equal(t, StatusCourt, task.Status)
}

func TestRegistry_UnknownTask(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Get("nope")
	require.ErrorIs(t, err, ErrUnknownTask)
	_, err = r.Trigger("nope", t0)
	require.ErrorIs(t, err, ErrUnknownTask)
	_, _, err = r.Fix("nope", t0)
	require.ErrorIs(t, err, ErrUnknownTask)
}

func TestRegistry_TriggerKeepsFirstAppearance(t *testing.T) {
	r := triggered(t, TaskAlt, t0)

	ok, err := r.Trigger(TaskAlt, t0.Add(time.Minute))
	require.NoError(t, err)
	require.False(t, ok)

	task, _ := r.Get(TaskAlt)
	require.Equal(t, t0, *task.FirstAt)
}

func TestRegistry_TriggerIgnoresFixedTask(t *testing.T) {
	r := newTestRegistry(t)
	_, _, err := r.Fix(TaskAlt, t0)
	require.NoError(t, err)

	ok, err := r.Trigger(TaskAlt, t0.Add(time.Second))
	require.NoError(t, err)
	require.False(t, ok)

	task, _ := r.Get(TaskAlt)
	require.False(t, task.Triggered())
}

func TestRegistry_Summons(t *testing.T) {
	r := newTestRegistry(t)
	for _, key := range []TaskKey{TaskAlt, TaskLogin, TaskDatabase} {
		_, err := r.Trigger(key, t0)
		require.NoError(t, err)
	}
	r.Tick(t0.Add(2 * threshold))

	require.Equal(t, []Summons{
		{Task: TaskAlt, Label: "Fix alt in img1", Note: "(breaking Disability Act)"},
		{Task: TaskLogin, Label: "Fix user login", Note: "(declared bankruptcy)"},
		{Task: TaskDatabase, Label: "Secure the database", Note: "(breaking Laws of Tort)"},
	}, r.Summons())
}

func TestRegistry_TimestampInvariants(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 11))

	for run := 0; run < 50; run++ {
		r := newTestRegistry(t)
		now := t0
		for step := 0; step < 60; step++ {
			now = now.Add(time.Duration(rnd.Int64N(int64(90 * time.Second))))
			switch rnd.IntN(4) {
			case 0:
				key := r.tasks[rnd.IntN(len(r.tasks))].Key
				_, _ = r.Trigger(key, now)
			case 1:
				key := r.tasks[rnd.IntN(len(r.tasks))].Key
				_, _, _ = r.Fix(key, now)
			default:
				r.Tick(now)
			}

			for _, task := range r.Tasks() {
				if task.UrgentAt != nil {
					require.NotNil(t, task.FirstAt)
					require.False(t, task.UrgentAt.Before(task.FirstAt.Add(threshold)))
				}
				if task.Status == StatusCourt {
					require.NotNil(t, task.CourtAt)
					require.NotNil(t, task.UrgentAt)
					require.False(t, task.CourtAt.Before(task.FirstAt.Add(2*threshold)))
				} else {
					require.Nil(t, task.CourtAt)
				}
				if task.Status == StatusUrgent {
					require.NotNil(t, task.UrgentAt)
				}
			}
		}
	}
}
