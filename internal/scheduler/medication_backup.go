package scheduler

import (
	"context"
	"time"

	"folio/internal/service"
)

const backupTimeout = 2 * time.Minute

type MedicationBackupJob struct {
	MedicationService service.MedicationService
}

func NewMedicationBackupJob(medicationService service.MedicationService) *MedicationBackupJob {
	return &MedicationBackupJob{
		MedicationService: medicationService,
	}
}

func (j *MedicationBackupJob) Name() string {
	return "medication_backup"
}

func (j *MedicationBackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	_, err := j.MedicationService.Backup(ctx)
	return err
}
