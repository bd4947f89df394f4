package resolver

import (
	"context"
	"fmt"
	"time"

	api_types "folio/api-types"
	folio_errors "folio/internal"
	"folio/internal/domain"
	"folio/internal/medication"
)

func (r resolverHandler) GetMedicationStatus(now time.Time) (*api_types.MedicationStatusResponse, error) {
	status, err := r.MedicationService.Status(now)
	if err != nil {
		return nil, fmt.Errorf("failed to get medication status: %w", err)
	}
	return &api_types.MedicationStatusResponse{
		Doses:         status.State.Doses,
		IntervalHours: float64(status.State.IntervalHours),
		LastDose:      status.LastDose,
		Elapsed:       status.Elapsed,
		NextDoseAt:    status.NextDoseAt,
		Overdue:       status.Overdue,
		Adherence:     status.Adherence,
		Stats:         status.Stats,
	}, nil
}

func (r resolverHandler) LogDose(req api_types.LogDoseRequest) (*api_types.LogDoseResponse, error) {
	takenAt := time.Now()
	if req.TakenAt != nil {
		takenAt = *req.TakenAt
	}
	d, err := r.MedicationService.LogDose(takenAt, req.Note)
	if err != nil {
		return nil, err
	}
	return &api_types.LogDoseResponse{Dose: d}, nil
}

func (r resolverHandler) DeleteDose(req api_types.DeleteDoseRequest) (*api_types.MedicationStatusResponse, error) {
	if _, err := r.MedicationService.Dispatch(medication.DeleteDose(req.DoseID)); err != nil {
		return nil, err
	}
	return r.GetMedicationStatus(time.Now())
}

func (r resolverHandler) SetInterval(req api_types.SetIntervalRequest) (*api_types.MedicationStatusResponse, error) {
	if req.IntervalHours <= 0 {
		return nil, folio_errors.ErrInvalidRequest{Reason: fmt.Sprintf("interval must be positive, got %v", req.IntervalHours)}
	}
	if _, err := r.MedicationService.Dispatch(medication.SetInterval(domain.Hours(req.IntervalHours))); err != nil {
		return nil, err
	}
	return r.GetMedicationStatus(time.Now())
}

func (r resolverHandler) BackupMedication(ctx context.Context) (*api_types.BackupResponse, error) {
	file, err := r.MedicationService.Backup(ctx)
	if err != nil {
		return nil, err
	}
	return &api_types.BackupResponse{
		FileID:       file.ID,
		Name:         file.Name,
		ModifiedTime: file.ModifiedTime,
	}, nil
}

func (r resolverHandler) RestoreMedication(ctx context.Context) (*api_types.MedicationStatusResponse, error) {
	if _, err := r.MedicationService.Restore(ctx); err != nil {
		return nil, err
	}
	return r.GetMedicationStatus(time.Now())
}
