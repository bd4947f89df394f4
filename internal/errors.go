package folio_errors

import (
	"fmt"
)

type StorageOperation string

const (
	StorageOperation_Save   StorageOperation = "save"
	StorageOperation_Load   StorageOperation = "load"
	StorageOperation_Delete StorageOperation = "delete"
	StorageOperation_Exists StorageOperation = "check"
)

// ErrStorage is what callers see when a storage backend
// fails. the message stays generic, the cause is kept for
// logging and errors.Is
type ErrStorage struct {
	Operation StorageOperation
	Name      string
	Err       error
}

func (e ErrStorage) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("failed to %s portfolio %s", e.Operation, e.Name)
	}
	return fmt.Sprintf("failed to %s portfolios", e.Operation)
}

func (e ErrStorage) Unwrap() error {
	return e.Err
}

type ErrPortfolioNotFound struct {
	Name string
}

func (e ErrPortfolioNotFound) Error() string {
	return fmt.Sprintf("portfolio %s not found", e.Name)
}

type ErrBackupNotFound struct {
	Filename string
}

func (e ErrBackupNotFound) Error() string {
	return fmt.Sprintf("no backup named %s in app data", e.Filename)
}

type ErrUnknownETF struct {
	Ticker string
}

func (e ErrUnknownETF) Error() string {
	return fmt.Sprintf("%s is not in the etf catalog", e.Ticker)
}

// ErrBackupUnavailable is returned when no drive
// credentials were configured
type ErrBackupUnavailable struct{}

func (e ErrBackupUnavailable) Error() string {
	return "drive backup is not configured"
}

type ErrInvalidRequest struct {
	Reason string
}

func (e ErrInvalidRequest) Error() string {
	return e.Reason
}
