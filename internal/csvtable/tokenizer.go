package csvtable

import (
	"strings"
)

// Parse splits csv text into rows. it is a single pass
// over the input with one bit of state, whether we're
// inside quotes. there is no recovery for bad quoting, an
// unterminated quote runs to the end of the input. rows
// where every field is blank are dropped
func Parse(text string) [][]string {
	rows := [][]string{}
	row := []string{}
	var field strings.Builder
	inQuotes := false

	endRow := func() {
		row = append(row, field.String())
		field.Reset()
		if !isBlank(row) {
			rows = append(rows, row)
		}
		row = []string{}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				field.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, field.String())
			field.Reset()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
				endRow()
			} else {
				field.WriteByte(c)
			}
		case '\n':
			endRow()
		default:
			field.WriteByte(c)
		}
	}

	if field.Len() > 0 || len(row) > 0 {
		endRow()
	}

	return rows
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

const (
	ExportAllFilename        = "exported_data.csv"
	ExportSelectedFilename   = "exported_selected.csv"
	ExportDeselectedFilename = "exported_deselected.csv"
)

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// Format writes every field quoted, with each line
// ending in \n. a nil header writes the rows only
func Format(headers []string, rows [][]string) string {
	var b strings.Builder
	writeLine := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(f))
		}
		b.WriteByte('\n')
	}
	if headers != nil {
		writeLine(headers)
	}
	for _, row := range rows {
		writeLine(row)
	}
	return b.String()
}
