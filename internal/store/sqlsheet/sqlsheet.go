// Package sqlsheet keeps the record sheet in a SQL table through gorm.
package sqlsheet

import (
	"context"
	"errors"
	"fmt"

	"github.com/cellar-club/tasting/internal/models"
	"github.com/cellar-club/tasting/internal/store"
	"gorm.io/gorm"
)

// Sheet is a store.Sheet stored as rows of models.SheetRowModel sharing one
// sheet name. Row order is the position column.
type Sheet struct {
	db   *gorm.DB
	name string
}

var _ store.Sheet = (*Sheet)(nil)

func New(db *gorm.DB, name string) (*Sheet, error) {
	if db == nil {
		return nil, errors.New("sqlsheet: db is nil")
	}
	if name == "" {
		return nil, errors.New("sqlsheet: sheet name is empty")
	}
	return &Sheet{db: db, name: name}, nil
}

func (s *Sheet) scope(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.SheetRowModel{}).Where("sheet = ?", s.name)
}

func (s *Sheet) ReadHeader(ctx context.Context) ([]string, error) {
	var row models.SheetRowModel
	err := s.scope(ctx).Order("position ASC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlsheet: read header: %w", err)
	}
	return []string(row.Cells), nil
}

func (s *Sheet) WriteHeader(ctx context.Context, header []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var first struct{ Pos *int64 }
		if err := tx.Model(&models.SheetRowModel{}).
			Where("sheet = ?", s.name).
			Select("MIN(position) AS pos").
			Scan(&first).Error; err != nil {
			return fmt.Errorf("sqlsheet: find first position: %w", err)
		}
		pos := int64(1)
		if first.Pos != nil {
			pos = *first.Pos - 1
		}
		row := models.SheetRowModel{Sheet: s.name, Position: pos, Cells: models.SheetCells(header)}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("sqlsheet: insert header: %w", err)
		}
		return nil
	})
}

func (s *Sheet) AppendRow(ctx context.Context, cells []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last struct{ Pos *int64 }
		if err := tx.Model(&models.SheetRowModel{}).
			Where("sheet = ?", s.name).
			Select("MAX(position) AS pos").
			Scan(&last).Error; err != nil {
			return fmt.Errorf("sqlsheet: find last position: %w", err)
		}
		pos := int64(1)
		if last.Pos != nil {
			pos = *last.Pos + 1
		}
		row := models.SheetRowModel{Sheet: s.name, Position: pos, Cells: models.SheetCells(cells)}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("sqlsheet: append row: %w", err)
		}
		return nil
	})
}

func (s *Sheet) ReadAllRows(ctx context.Context) ([]map[string]string, error) {
	var rows []models.SheetRowModel
	if err := s.scope(ctx).Order("position ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("sqlsheet: read rows: %w", err)
	}
	if len(rows) == 0 {
		return []map[string]string{}, nil
	}
	cells := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		cells = append(cells, []string(r.Cells))
	}
	return store.MapRows(rows[0].Cells, cells), nil
}

// Close is a no-op; the gorm pool is owned by the caller.
func (s *Sheet) Close() error { return nil }
