package medication

import (
	. "folio/internal/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func dose(offset time.Duration) Dose {
	return Dose{ID: uuid.New(), TakenAt: t0.Add(offset)}
}

func stateWith(doses ...Dose) MedicationState {
	s := InitialState()
	for _, d := range doses {
		s = Reduce(s, AddDose(d))
	}
	return s
}

func TestReduce(t *testing.T) {
	first := dose(0)
	second := dose(24 * time.Hour)

	s := InitialState()
	s = Reduce(s, AddDose(first))
	s = Reduce(s, AddDose(second))
	require.Equal(t, []Dose{second, first}, s.Doses)

	// same id twice is ignored
	s = Reduce(s, AddDose(first))
	require.Len(t, s.Doses, 2)

	before := s
	s = Reduce(s, DeleteDose(second.ID))
	require.Equal(t, []Dose{first}, s.Doses)
	require.Len(t, before.Doses, 2)

	s = Reduce(s, SetInterval(12))
	require.Equal(t, Hours(12), s.IntervalHours)
	s = Reduce(s, SetInterval(-1))
	require.Equal(t, Hours(12), s.IntervalHours)

	s = Reduce(s, ClearDoses())
	require.Empty(t, s.Doses)

	s = Reduce(s, Load(MedicationState{Doses: []Dose{first, second}}))
	require.Equal(t, []Dose{second, first}, s.Doses)
	require.Equal(t, DefaultDoseInterval, s.IntervalHours)
}

func TestElapsed(t *testing.T) {
	s := InitialState()
	_, ok := TimeSinceLastDose(s, t0)
	require.False(t, ok)
	require.False(t, IsOverdue(s, t0))

	s = stateWith(dose(0))
	elapsed, ok := TimeSinceLastDose(s, t0.Add(3*time.Hour+5*time.Minute))
	require.True(t, ok)
	require.Equal(t, "3h 05m", FormatElapsed(elapsed))

	next, ok := NextDoseAt(s)
	require.True(t, ok)
	require.Equal(t, t0.Add(24*time.Hour), next)
	require.False(t, IsOverdue(s, t0.Add(24*time.Hour)))
	require.True(t, IsOverdue(s, t0.Add(25*time.Hour)))

	require.Equal(t, "42m", FormatElapsed(42*time.Minute))
	require.Equal(t, "2d 4h", FormatElapsed(52*time.Hour))
	require.Equal(t, "0m", FormatElapsed(-time.Hour))
}

func TestCalculateAdherence(t *testing.T) {
	t.Run("no doses", func(t *testing.T) {
		require.Equal(t,
			Adherence{Percentage: 100, Status: AdherenceStatus_Excellent},
			CalculateAdherence(InitialState(), t0),
		)
	})

	t.Run("single recent dose", func(t *testing.T) {
		a := CalculateAdherence(stateWith(dose(0)), t0.Add(2*time.Hour))
		require.Equal(t, 100, a.Percentage)
		require.Equal(t, AdherenceStatus_Excellent, a.Status)
	})

	t.Run("all on time", func(t *testing.T) {
		s := stateWith(dose(0), dose(24*time.Hour), dose(49*time.Hour), dose(72*time.Hour))
		a := CalculateAdherence(s, t0.Add(80*time.Hour))
		require.Equal(t, Adherence{Percentage: 100, Status: AdherenceStatus_Excellent, OnTime: 3, Total: 3}, a)
	})

	t.Run("one late gap", func(t *testing.T) {
		s := stateWith(dose(0), dose(24*time.Hour), dose(72*time.Hour), dose(96*time.Hour), dose(120*time.Hour))
		a := CalculateAdherence(s, t0.Add(121*time.Hour))
		require.Equal(t, Adherence{Percentage: 75, Status: AdherenceStatus_Good, OnTime: 3, Total: 4}, a)
	})

	t.Run("overdue now counts as a miss", func(t *testing.T) {
		s := stateWith(dose(0), dose(24*time.Hour))
		a := CalculateAdherence(s, t0.Add(24*time.Hour+31*time.Hour))
		require.Equal(t, Adherence{Percentage: 50, Status: AdherenceStatus_Fair, OnTime: 1, Total: 2}, a)
	})

	t.Run("poor", func(t *testing.T) {
		s := stateWith(dose(0), dose(48*time.Hour), dose(96*time.Hour))
		a := CalculateAdherence(s, t0.Add(97*time.Hour))
		require.Equal(t, AdherenceStatus_Poor, a.Status)
		require.Equal(t, 0, a.Percentage)
	})
}

func TestCalculateStats(t *testing.T) {
	out, err := CalculateStats(stateWith(dose(0)))
	require.NoError(t, err)
	require.Equal(t, DoseStats{Count: 1}, out)

	out, err = CalculateStats(stateWith(dose(0), dose(20*time.Hour), dose(44*time.Hour), dose(74*time.Hour)))
	require.NoError(t, err)
	require.Equal(t, 4, out.Count)
	require.InDelta(t, 24.6667, out.MeanIntervalHours, 0.001)
	require.Equal(t, 24.0, out.MedianIntervalHours)
}
