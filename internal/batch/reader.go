// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"namecheck/internal/classify"
)

// ReadRecords reads input records from r in the format implied by the file
// name extension. CSV is the default; .xlsx selects the spreadsheet reader.
func ReadRecords(r io.Reader, filename string, maxRecords int) ([]classify.Record, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return readXLSX(r, maxRecords)
	}
	return readCSV(r, maxRecords)
}

// readCSV reads records from CSV data. The first row must be a header; rows
// missing a name produce records anyway so the classifier can report them
// per-record instead of the reader dropping them.
func readCSV(r io.Reader, maxRecords int) ([]classify.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns := mapColumns(headers)
	if _, ok := columns[colName]; !ok {
		return nil, fmt.Errorf("no name column found in header %v", headers)
	}

	var records []classify.Record
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", rowNum+1, err)
		}
		rowNum++
		records = append(records, rowToRecord(row, columns, rowNum))
		if maxRecords > 0 && len(records) >= maxRecords {
			break
		}
	}
	return records, nil
}

// readXLSX reads records from the first sheet of an Excel workbook.
func readXLSX(r io.Reader, maxRecords int) ([]classify.Record, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty input: no header row")
	}

	columns := mapColumns(rows[0])
	if _, ok := columns[colName]; !ok {
		return nil, fmt.Errorf("no name column found in header %v", rows[0])
	}

	var records []classify.Record
	for i, row := range rows[1:] {
		records = append(records, rowToRecord(row, columns, i+1))
		if maxRecords > 0 && len(records) >= maxRecords {
			break
		}
	}
	return records, nil
}

// rowToRecord builds a record from a data row. A missing unique id is
// synthesized from the row number; a missing parse indicator defaults to
// "Y" (parse unless told otherwise).
func rowToRecord(row []string, columns map[string]int, rowNum int) classify.Record {
	record := classify.Record{
		UniqueID:       cell(row, columns, colUniqueID),
		Name:           cell(row, columns, colName),
		GenderHint:     cell(row, columns, colGender),
		PartyTypeHint:  cell(row, columns, colPartyType),
		ParseIndicator: cell(row, columns, colParseInd),
	}
	if record.UniqueID == "" {
		record.UniqueID = fmt.Sprintf("row_%d", rowNum)
	}
	if record.ParseIndicator == "" {
		record.ParseIndicator = "Y"
	}
	return record
}
