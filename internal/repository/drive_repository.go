package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	folio_errors "folio/internal"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source=drive_repository.go -destination=mock_drive_repository.go -package=repository

const (
	DriveAppDataScope    = "https://www.googleapis.com/auth/drive.appdata"
	DefaultDriveBaseURL  = "https://www.googleapis.com"
	MedicationBackupName = "medtrack_backup.json"
	driveAppDataFolder   = "appDataFolder"
	driveFileFields      = "id,name,modifiedTime"
	driveRequestTimeout  = 30 * time.Second
	jsonContentType      = "application/json"
)

type DriveFile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ModifiedTime time.Time `json:"modifiedTime"`
}

type driveFileList struct {
	Files []DriveFile `json:"files"`
}

type driveErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// DriveRepository reads and writes a single named file in
// the app data folder of the signed in user's drive
type DriveRepository interface {
	Find(ctx context.Context, name string) (*DriveFile, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
	Upload(ctx context.Context, name string, content []byte) (*DriveFile, error)
}

type driveRepositoryHandler struct {
	Client *resty.Client
	log    zerolog.Logger
}

// NewDriveRepository takes an oauth access token granted
// the drive.appdata scope
func NewDriveRepository(baseURL string, accessToken string, log zerolog.Logger) DriveRepository {
	baseURL = strings.TrimSuffix(baseURL, "/")
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(driveRequestTimeout).
		SetAuthToken(accessToken).
		SetHeader("Accept", "application/json")

	return driveRepositoryHandler{
		Client: client,
		log:    log.With().Str("component", "drive_repository").Logger(),
	}
}

func driveError(op string, resp *resty.Response) error {
	msg := resp.Status()
	if e, ok := resp.Error().(*driveErrorResponse); ok && e.Error.Message != "" {
		msg = e.Error.Message
	}
	return fmt.Errorf("drive %s failed (%d): %s", op, resp.StatusCode(), msg)
}

func (h driveRepositoryHandler) Find(ctx context.Context, name string) (*DriveFile, error) {
	var list driveFileList
	resp, err := h.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"spaces":  driveAppDataFolder,
			"q":       fmt.Sprintf("name = '%s'", strings.ReplaceAll(name, "'", `\'`)),
			"fields":  "files(" + driveFileFields + ")",
			"orderBy": "modifiedTime desc",
		}).
		SetResult(&list).
		SetError(&driveErrorResponse{}).
		Get("/drive/v3/files")
	if err != nil {
		return nil, fmt.Errorf("failed to list drive files: %w", err)
	}
	if resp.IsError() {
		return nil, driveError("list", resp)
	}

	if len(list.Files) == 0 {
		return nil, folio_errors.ErrBackupNotFound{Filename: name}
	}
	f := list.Files[0]
	return &f, nil
}

func (h driveRepositoryHandler) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := h.Client.R().
		SetContext(ctx).
		SetQueryParam("alt", "media").
		SetError(&driveErrorResponse{}).
		Get("/drive/v3/files/" + fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to download drive file %s: %w", fileID, err)
	}
	if resp.IsError() {
		return nil, driveError("download", resp)
	}
	return resp.Body(), nil
}

func (h driveRepositoryHandler) create(ctx context.Context, name string) (*DriveFile, error) {
	var created DriveFile
	resp, err := h.Client.R().
		SetContext(ctx).
		SetHeader("Content-Type", jsonContentType).
		SetQueryParam("fields", driveFileFields).
		SetBody(map[string]interface{}{
			"name":     name,
			"parents":  []string{driveAppDataFolder},
			"mimeType": jsonContentType,
		}).
		SetResult(&created).
		SetError(&driveErrorResponse{}).
		Post("/drive/v3/files")
	if err != nil {
		return nil, fmt.Errorf("failed to create drive file %s: %w", name, err)
	}
	if resp.IsError() {
		return nil, driveError("create", resp)
	}
	return &created, nil
}

// Upload overwrites the named file, creating it first
// when it doesn't exist yet
func (h driveRepositoryHandler) Upload(ctx context.Context, name string, content []byte) (*DriveFile, error) {
	existing, err := h.Find(ctx, name)
	var notFound folio_errors.ErrBackupNotFound
	if errors.As(err, &notFound) {
		existing, err = h.create(ctx, name)
	}
	if err != nil {
		return nil, err
	}

	var updated DriveFile
	resp, err := h.Client.R().
		SetContext(ctx).
		SetHeader("Content-Type", jsonContentType).
		SetQueryParams(map[string]string{
			"uploadType": "media",
			"fields":     driveFileFields,
		}).
		SetBody(content).
		SetResult(&updated).
		SetError(&driveErrorResponse{}).
		Patch("/upload/drive/v3/files/" + existing.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to upload drive file %s: %w", name, err)
	}
	if resp.IsError() {
		return nil, driveError("upload", resp)
	}

	h.log.Info().Str("file", name).Str("id", updated.ID).Int("bytes", len(content)).Msg("uploaded backup")
	return &updated, nil
}
