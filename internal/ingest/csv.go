// Package ingest turns external title tables (uploaded CSV files or
// published-sheet exports) into domain titles. Header-name variance is
// resolved here so the ranking core only ever sees a clean in-memory corpus.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/thesisdesk/titledex/internal/domain"
	"github.com/thesisdesk/titledex/internal/domain/title"
)

// titleAliases maps accepted title-column spellings (normalized) onto the
// canonical title field.
var titleAliases = map[string]struct{}{
	"project title": {},
	"title":         {},
	"project_title": {},
	"project":       {},
}

// metadataAliases maps recognized metadata-column spellings onto canonical
// field names. Unrecognized columns pass through under their normalized
// header.
var metadataAliases = map[string]string{
	"student name": "student",
	"student_name": "student",
	"student":      "student",
	"program":      "program",
	"programme":    "program",
	"year":         "year",
	"supervisor":   "supervisor",
}

// DecodeCSV parses a title table. The first record is the header; one of the
// accepted title spellings must be present or ErrTitleColumnMissing is
// returned. Blank title cells are kept as empty entries so corpus indexes
// keep matching source rows.
func DecodeCSV(r io.Reader) ([]title.Title, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty table", domain.ErrTitleColumnMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	titleIdx := -1
	metaCols := make(map[int]string)
	for i, h := range header {
		norm := normalizeHeader(h)
		if _, ok := titleAliases[norm]; ok && titleIdx < 0 {
			titleIdx = i
			continue
		}
		if canonical, ok := metadataAliases[norm]; ok {
			metaCols[i] = canonical
		} else if norm != "" {
			metaCols[i] = norm
		}
	}
	if titleIdx < 0 {
		return nil, fmt.Errorf("%w: header %v has no recognized title column", domain.ErrTitleColumnMissing, header)
	}

	var titles []title.Title
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(titles)+2, err)
		}

		text := ""
		if titleIdx < len(record) {
			text = strings.TrimSpace(record[titleIdx])
		}

		var metadata map[string]string
		for i, canonical := range metaCols {
			if i >= len(record) {
				continue
			}
			val := strings.TrimSpace(record[i])
			if val == "" {
				continue
			}
			if metadata == nil {
				metadata = make(map[string]string, len(metaCols))
			}
			metadata[canonical] = val
		}

		titles = append(titles, title.Reconstruct(text, metadata))
	}

	return titles, nil
}

// normalizeHeader lowercases and trims a header cell, collapsing inner
// whitespace runs to single spaces.
func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}
