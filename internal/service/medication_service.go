package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	folio_errors "folio/internal"
	. "folio/internal/domain"
	"folio/internal/medication"
	"folio/internal/repository"
	"folio/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DosesKey    = "medtrack_doses"
	IntervalKey = "medtrack_interval"
)

type MedicationStatus struct {
	State      MedicationState
	LastDose   *Dose
	Elapsed    string
	NextDoseAt *time.Time
	Overdue    bool
	Adherence  Adherence
	Stats      DoseStats
}

type MedicationService interface {
	State() MedicationState
	Status(now time.Time) (*MedicationStatus, error)
	Dispatch(action medication.Action) (MedicationState, error)
	LogDose(takenAt time.Time, note string) (Dose, error)

	Backup(ctx context.Context) (*repository.DriveFile, error)
	Restore(ctx context.Context) (MedicationState, error)
}

type medicationServiceHandler struct {
	KV              store.KeyValueStore
	DriveRepository repository.DriveRepository
	log             zerolog.Logger

	mu    sync.Mutex
	state MedicationState
}

// NewMedicationService loads whatever was saved last. drive
// may be nil, backup and restore then report they're off
func NewMedicationService(kv store.KeyValueStore, drive repository.DriveRepository, log zerolog.Logger) (MedicationService, error) {
	h := &medicationServiceHandler{
		KV:              kv,
		DriveRepository: drive,
		log:             log.With().Str("component", "medication_service").Logger(),
	}
	state, err := h.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load medication state: %w", err)
	}
	h.state = state
	return h, nil
}

func (h *medicationServiceHandler) load() (MedicationState, error) {
	saved := medication.InitialState()

	raw, ok, err := h.KV.Get(DosesKey)
	if err != nil {
		return saved, err
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &saved.Doses); err != nil {
			h.log.Warn().Err(err).Msg("discarding unreadable dose log")
			saved.Doses = []Dose{}
		}
	}

	raw, ok, err = h.KV.Get(IntervalKey)
	if err != nil {
		return saved, err
	}
	if ok {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			saved.IntervalHours = Hours(f)
		}
	}

	return medication.Reduce(medication.InitialState(), medication.Load(saved)), nil
}

func (h *medicationServiceHandler) persist(s MedicationState) error {
	b, err := json.Marshal(s.Doses)
	if err != nil {
		return err
	}
	if err := h.KV.Set(DosesKey, string(b)); err != nil {
		return err
	}
	return h.KV.Set(IntervalKey, strconv.FormatFloat(float64(s.IntervalHours), 'f', -1, 64))
}

func (h *medicationServiceHandler) State() MedicationState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return medication.Reduce(h.state, medication.Action{})
}

func (h *medicationServiceHandler) Status(now time.Time) (*MedicationStatus, error) {
	s := h.State()
	stats, err := medication.CalculateStats(s)
	if err != nil {
		return nil, err
	}

	out := &MedicationStatus{
		State:     s,
		LastDose:  s.LastDose(),
		Overdue:   medication.IsOverdue(s, now),
		Adherence: medication.CalculateAdherence(s, now),
		Stats:     stats,
	}
	if elapsed, ok := medication.TimeSinceLastDose(s, now); ok {
		out.Elapsed = medication.FormatElapsed(elapsed)
	}
	if next, ok := medication.NextDoseAt(s); ok {
		out.NextDoseAt = &next
	}
	return out, nil
}

// Dispatch reduces and persists. the in-memory state only
// moves forward once the write went through
func (h *medicationServiceHandler) Dispatch(action medication.Action) (MedicationState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := medication.Reduce(h.state, action)
	if err := h.persist(next); err != nil {
		h.log.Error().Err(err).Str("action", string(action.Type)).Msg("failed to persist medication state")
		return h.state, fmt.Errorf("failed to save medication state: %w", err)
	}
	h.state = next
	return next, nil
}

func (h *medicationServiceHandler) LogDose(takenAt time.Time, note string) (Dose, error) {
	if takenAt.IsZero() {
		takenAt = time.Now()
	}
	d := Dose{
		ID:      uuid.New(),
		TakenAt: takenAt.UTC(),
		Note:    note,
	}
	if _, err := h.Dispatch(medication.AddDose(d)); err != nil {
		return Dose{}, err
	}
	return d, nil
}

func (h *medicationServiceHandler) Backup(ctx context.Context) (*repository.DriveFile, error) {
	if h.DriveRepository == nil {
		return nil, folio_errors.ErrBackupUnavailable{}
	}
	s := h.State()
	b, err := json.Marshal(MedicationBackup{
		Doses:         s.Doses,
		IntervalHours: s.IntervalHours,
		ExportedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	file, err := h.DriveRepository.Upload(ctx, repository.MedicationBackupName, b)
	if err != nil {
		return nil, fmt.Errorf("failed to back up doses: %w", err)
	}
	h.log.Info().Int("doses", len(s.Doses)).Msg("backed up medication log")
	return file, nil
}

// Restore replaces local state with the drive copy
func (h *medicationServiceHandler) Restore(ctx context.Context) (MedicationState, error) {
	if h.DriveRepository == nil {
		return h.State(), folio_errors.ErrBackupUnavailable{}
	}
	file, err := h.DriveRepository.Find(ctx, repository.MedicationBackupName)
	if err != nil {
		return h.State(), err
	}
	b, err := h.DriveRepository.Download(ctx, file.ID)
	if err != nil {
		return h.State(), fmt.Errorf("failed to download backup: %w", err)
	}

	var backup MedicationBackup
	if err := json.Unmarshal(b, &backup); err != nil {
		return h.State(), fmt.Errorf("failed to read backup %s: %w", file.Name, err)
	}

	return h.Dispatch(medication.Load(MedicationState{
		Doses:         backup.Doses,
		IntervalHours: backup.IntervalHours,
	}))
}
