package medication

import (
	"fmt"
	"math"
	"time"

	. "folio/internal/domain"

	"github.com/montanaflynn/stats"
)

// a dose taken up to a quarter interval late still counts
const onTimeTolerance = 1.25

func TimeSinceLastDose(s MedicationState, now time.Time) (time.Duration, bool) {
	last := s.LastDose()
	if last == nil {
		return 0, false
	}
	return now.Sub(last.TakenAt), true
}

func NextDoseAt(s MedicationState) (time.Time, bool) {
	last := s.LastDose()
	if last == nil {
		return time.Time{}, false
	}
	return last.TakenAt.Add(s.Interval()), true
}

func IsOverdue(s MedicationState, now time.Time) bool {
	next, ok := NextDoseAt(s)
	if !ok {
		return false
	}
	return now.After(next)
}

// FormatElapsed renders 42m, 3h 05m or 2d 4h
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	hours := minutes / 60
	minutes = minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case hours < 48:
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	default:
		return fmt.Sprintf("%dd %dh", hours/24, hours%24)
	}
}

func statusFor(pct int) AdherenceStatus {
	switch {
	case pct >= 90:
		return AdherenceStatus_Excellent
	case pct >= 75:
		return AdherenceStatus_Good
	case pct >= 50:
		return AdherenceStatus_Fair
	default:
		return AdherenceStatus_Poor
	}
}

func oldestFirst(s MedicationState) []Dose {
	out := make([]Dose, len(s.Doses))
	copy(out, s.Doses)
	sortNewestFirst(out)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// CalculateAdherence scores each gap between doses as on
// time or missed. a gap still open at now only counts once
// it is already late
func CalculateAdherence(s MedicationState, now time.Time) Adherence {
	doses := oldestFirst(s)
	if len(doses) == 0 {
		return Adherence{Percentage: 100, Status: AdherenceStatus_Excellent}
	}

	limit := time.Duration(float64(s.Interval()) * onTimeTolerance)
	total, onTime := 0, 0
	for i := 1; i < len(doses); i++ {
		total++
		if doses[i].TakenAt.Sub(doses[i-1].TakenAt) <= limit {
			onTime++
		}
	}
	if now.Sub(doses[len(doses)-1].TakenAt) > limit {
		total++
	}

	if total == 0 {
		return Adherence{Percentage: 100, Status: AdherenceStatus_Excellent}
	}

	pct := int(math.Round(float64(onTime) * 100 / float64(total)))
	return Adherence{
		Percentage: pct,
		Status:     statusFor(pct),
		OnTime:     onTime,
		Total:      total,
	}
}

func CalculateStats(s MedicationState) (DoseStats, error) {
	doses := oldestFirst(s)
	out := DoseStats{Count: len(doses)}
	if len(doses) < 2 {
		return out, nil
	}

	gaps := HoursData{}
	for i := 1; i < len(doses); i++ {
		gaps = append(gaps, Hours(doses[i].TakenAt.Sub(doses[i-1].TakenAt).Hours()))
	}

	mean, err := stats.Mean(gaps.ToStatsData())
	if err != nil {
		return out, fmt.Errorf("failed to compute mean dose interval: %w", err)
	}
	median, err := stats.Median(gaps.ToStatsData())
	if err != nil {
		return out, fmt.Errorf("failed to compute median dose interval: %w", err)
	}
	out.MeanIntervalHours = mean
	out.MedianIntervalHours = median
	return out, nil
}
