package catalog

import "strings"

// utf8BOM is the byte-order mark Windows tools prepend to CSV exports.
// It survives csv parsing glued to the first header name.
const utf8BOM = "\ufeff"

// CleanHeader normalizes a CSV column name: strips a leading BOM, trims
// whitespace, and lowercases for case-insensitive matching.
func CleanHeader(s string) string {
	s = strings.TrimPrefix(s, utf8BOM)
	return strings.ToLower(strings.TrimSpace(s))
}

// CleanCell removes common CSV artifacts from a cell value:
//   - strips a leading BOM
//   - trims whitespace
//   - removes Excel formula prefix (="...")
//   - removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimPrefix(s, utf8BOM)
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

// NormalizeRow returns a new row with cleaned keys and values.
// Absent or blank values stay as empty strings rather than erroring;
// the input row is not modified.
func NormalizeRow(row RawRow) RawRow {
	out := make(RawRow, len(row))
	for k, v := range row {
		out[CleanHeader(k)] = CleanCell(v)
	}
	return out
}

// rowFromRecord pairs a cleaned header with one CSV record, producing the
// normalized RawRow the validator operates on. Records shorter than the
// header leave the trailing fields empty; extra fields are dropped.
func rowFromRecord(header []string, record []string) RawRow {
	row := make(RawRow, len(header))
	for i, key := range header {
		if key == "" {
			continue
		}
		if i < len(record) {
			row[key] = CleanCell(record[i])
		} else {
			row[key] = ""
		}
	}
	return row
}

// isEmptyRecord reports whether every field in the record is blank.
func isEmptyRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
