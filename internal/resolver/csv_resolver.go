package resolver

import (
	"fmt"

	api_types "folio/api-types"
	folio_errors "folio/internal"
	"folio/internal/csvtable"
)

func (r resolverHandler) ParseCsv(req api_types.ParseCsvRequest) (*api_types.ParseCsvResponse, error) {
	table, err := csvtable.Load(req.Text)
	if err != nil {
		return nil, err
	}
	return &api_types.ParseCsvResponse{
		Headers: table.Headers,
		Rows:    table.Rows,
	}, nil
}

func (r resolverHandler) ExportCsv(req api_types.ExportCsvRequest) (*api_types.ExportCsvResponse, error) {
	table := csvtable.NewTable(req.Headers, req.Rows)
	if err := table.Select(req.Selected...); err != nil {
		return nil, fmt.Errorf("failed to select rows: %w", err)
	}

	var filename, content string
	switch req.Mode {
	case api_types.ExportMode_All, "":
		filename, content = table.ExportAll()
	case api_types.ExportMode_Selected:
		filename, content = table.ExportSelected()
	case api_types.ExportMode_Deselected:
		filename, content = table.ExportDeselected()
	default:
		return nil, folio_errors.ErrInvalidRequest{Reason: fmt.Sprintf("unknown export mode %q", req.Mode)}
	}

	return &api_types.ExportCsvResponse{
		Filename: filename,
		Content:  content,
	}, nil
}

func preferencesToApi(p csvtable.Preferences) *api_types.CsvPreferences {
	return &api_types.CsvPreferences{
		Density:   string(p.Density),
		Theme:     string(p.Theme),
		FullWidth: p.FullWidth,
	}
}

func (r resolverHandler) GetCsvPreferences() (*api_types.CsvPreferences, error) {
	p, err := csvtable.LoadPreferences(r.KV)
	if err != nil {
		return nil, err
	}
	return preferencesToApi(p), nil
}

func (r resolverHandler) UpdateCsvPreferences(req api_types.CsvPreferences) (*api_types.CsvPreferences, error) {
	p := csvtable.Preferences{
		Density:   csvtable.Density(req.Density),
		Theme:     csvtable.Theme(req.Theme),
		FullWidth: req.FullWidth,
	}
	if err := csvtable.SavePreferences(r.KV, p); err != nil {
		return nil, err
	}
	return preferencesToApi(p), nil
}
