// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package batch reads record files (CSV, XLSX) and classifies their rows
// concurrently. Column headers are matched through an alias table so callers
// are not held to exact spellings.
package batch

import "strings"

// Canonical column names.
const (
	colUniqueID  = "uniqueid"
	colName      = "name"
	colGender    = "gender"
	colPartyType = "partytype"
	colParseInd  = "parseind"
)

// columnAliases maps normalized header spellings to canonical columns.
var columnAliases = map[string]string{
	"uniqueid":   colUniqueID,
	"id":         colUniqueID,
	"identifier": colUniqueID,
	"name":       colName,
	"fullname":   colName,
	"gender":     colGender,
	"sex":        colGender,
	"partytype":  colPartyType,
	"type":       colPartyType,
	"parseind":   colParseInd,
}

// normalizeHeader lowers a header and strips spaces and underscores, so
// "Party_Type", "party type" and "PARTYTYPE" all resolve identically.
func normalizeHeader(header string) string {
	s := strings.ToLower(strings.TrimSpace(header))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// mapColumns resolves a header row to canonical column positions. Unknown
// headers are ignored.
func mapColumns(headers []string) map[string]int {
	columns := make(map[string]int, len(headers))
	for i, header := range headers {
		if canonical, ok := columnAliases[normalizeHeader(header)]; ok {
			if _, taken := columns[canonical]; !taken {
				columns[canonical] = i
			}
		}
	}
	return columns
}

// cell safely extracts a trimmed cell value by canonical column.
func cell(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
