package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// SheetRowModel is one row of a sheet kept in SQL. Rows are ordered by
// Position; the header is simply the lowest position.
type SheetRowModel struct {
	ID       uint       `json:"id"       gorm:"primaryKey;autoIncrement"`
	Sheet    string     `json:"sheet"    gorm:"size:191;not null;index:idx_sheet_pos,priority:1"`
	Position int64      `json:"position" gorm:"not null;index:idx_sheet_pos,priority:2"`
	Cells    SheetCells `json:"cells"    gorm:"type:text"`
}

func (SheetRowModel) TableName() string { return "sheet_rows" }

// SheetCells stores a row's cells as a JSON array, tolerating a bare string.
type SheetCells []string

func (a SheetCells) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *SheetCells) Scan(value interface{}) error {
	if a == nil {
		return fmt.Errorf("models.SheetCells: Scan on nil pointer")
	}
	if value == nil {
		*a = []string{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("models.SheetCells: unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*a = []string{}
		return nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		*a = arr
		return nil
	}

	*a = []string{raw}
	return nil
}
