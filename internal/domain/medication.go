package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultDoseInterval Hours = 24

type Dose struct {
	ID      uuid.UUID `json:"id"`
	TakenAt time.Time `json:"takenAt"`
	Note    string    `json:"note,omitempty"`
}

type MedicationState struct {
	// newest first
	Doses         []Dose `json:"doses"`
	IntervalHours Hours  `json:"intervalHours"`
}

func (s MedicationState) Interval() time.Duration {
	return time.Duration(float64(s.IntervalHours) * float64(time.Hour))
}

func (s MedicationState) LastDose() *Dose {
	if len(s.Doses) == 0 {
		return nil
	}
	d := s.Doses[0]
	return &d
}

type AdherenceStatus string

const (
	AdherenceStatus_Excellent AdherenceStatus = "excellent"
	AdherenceStatus_Good      AdherenceStatus = "good"
	AdherenceStatus_Fair      AdherenceStatus = "fair"
	AdherenceStatus_Poor      AdherenceStatus = "poor"
)

type Adherence struct {
	Percentage int             `json:"percentage"`
	Status     AdherenceStatus `json:"status"`
	OnTime     int             `json:"onTime"`
	Total      int             `json:"total"`
}

type DoseStats struct {
	Count               int     `json:"count"`
	MeanIntervalHours   float64 `json:"meanIntervalHours"`
	MedianIntervalHours float64 `json:"medianIntervalHours"`
}

// MedicationBackup is the blob pushed to drive
type MedicationBackup struct {
	Doses         []Dose    `json:"doses"`
	IntervalHours Hours     `json:"intervalHours"`
	ExportedAt    time.Time `json:"exportedAt"`
}
