package csvutil

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParsePartnersCSV reads a partners CSV with a header row and partitions the
// data rows into valid records and validation errors. A file-level parse
// failure produces a single row-0 error and no data.
func ParsePartnersCSV(contents []byte) PartnerParseResult {
	header, records, err := readRecords(contents)
	if err != nil {
		return PartnerParseResult{
			Rows:   []PartnerRow{},
			Errors: []ValidationError{fileError(err)},
		}
	}

	result := PartnerParseResult{Rows: make([]PartnerRow, 0, len(records))}
	for idx, record := range records {
		rowNumber := idx + 1
		row := rowToMap(header, record)
		if rowErrs := ValidatePartnerRow(row, rowNumber); len(rowErrs) > 0 {
			result.Errors = append(result.Errors, rowErrs...)
			continue
		}
		result.Rows = append(result.Rows, PartnerRow{
			CompanyName: row["company_name"],
			ContactName: row["contact_name"],
			Email:       row["email"],
			Phone:       row["phone"],
			Services:    row["services"],
			Website:     row["website"],
			Location:    row["location"],
			Notes:       row["notes"],
		})
	}
	result.IsValid = len(result.Errors) == 0
	return result
}

// ParseLeadsCSV reads a leads CSV with a header row and partitions the data
// rows into valid records and validation errors.
func ParseLeadsCSV(contents []byte) LeadParseResult {
	header, records, err := readRecords(contents)
	if err != nil {
		return LeadParseResult{
			Rows:   []LeadRow{},
			Errors: []ValidationError{fileError(err)},
		}
	}

	result := LeadParseResult{Rows: make([]LeadRow, 0, len(records))}
	for idx, record := range records {
		rowNumber := idx + 1
		row := rowToMap(header, record)
		if rowErrs := ValidateLeadRow(row, rowNumber); len(rowErrs) > 0 {
			result.Errors = append(result.Errors, rowErrs...)
			continue
		}
		result.Rows = append(result.Rows, LeadRow{
			PartnerCompanyName:  row["partner_company_name"],
			LeadName:            row["lead_name"],
			LeadCompany:         row["lead_company"],
			Direction:           row["direction"],
			Status:              row["status"],
			IntroDate:           row["intro_date"],
			ContactInfo:         row["contact_info"],
			CommunicationMethod: row["communication_method"],
			Notes:               row["notes"],
		})
	}
	result.IsValid = len(result.Errors) == 0
	return result
}

func fileError(err error) ValidationError {
	return ValidationError{
		Row:     0,
		Field:   "file",
		Message: fmt.Sprintf("Failed to parse CSV: %v", err),
	}
}

// readRecords decodes the byte stream, normalizes header names, and drops
// fully blank lines. The returned records preserve file order.
func readRecords(contents []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(contents))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("file is empty")
		}
		return nil, nil, err
	}

	normHeader := make([]string, len(header))
	for i, h := range header {
		normHeader[i] = NormalizeHeader(h)
	}

	records := make([][]string, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if isRecordEmpty(record) {
			continue
		}
		records = append(records, record)
	}
	return normHeader, records, nil
}

// NormalizeHeader makes column matching tolerant of spacing and case:
// "Company Name", "company_name", and "company  name" all map to
// "company_name".
func NormalizeHeader(h string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(h)))
	return strings.Join(fields, "_")
}

func rowToMap(header []string, record []string) map[string]string {
	out := make(map[string]string, len(header))
	for idx, key := range header {
		val := ""
		if idx < len(record) {
			val = strings.TrimSpace(record[idx])
		}
		out[key] = val
	}
	return out
}

func isRecordEmpty(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
