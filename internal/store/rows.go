package store

import "strings"

// MapRows keys every data row by the header cells. Missing cells become ""
// and rows with no content are dropped. Backends share it so that every
// sheet reads back the same way.
func MapRows(header []string, rows [][]string) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		m := make(map[string]string, len(header))
		for i, key := range header {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if i < len(row) {
				m[key] = row[i]
			} else {
				m[key] = ""
			}
		}
		out = append(out, m)
	}
	return out
}

func cloneRow(cells []string) []string {
	out := make([]string, len(cells))
	copy(out, cells)
	return out
}
