package sheets

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sheetRow is one spreadsheet row. RowIndex is the zero-based data index.
type sheetRow struct {
	Sheet    string         `gorm:"primaryKey;size:64"`
	RowIndex int            `gorm:"primaryKey;autoIncrement:false"`
	Cells    pq.StringArray `gorm:"type:text[]"`
}

func (sheetRow) TableName() string { return "sheet_rows" }

type sheetTable struct {
	Name    string         `gorm:"primaryKey;size:64"`
	Headers pq.StringArray `gorm:"type:text[]"`
}

func (sheetTable) TableName() string { return "sheet_tables" }

// PostgresStore keeps the spreadsheet layout in two postgres tables, for
// deployments that outgrow the Sheets API quota.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&sheetTable{}, &sheetRow{}); err != nil {
		return nil, fmt.Errorf("sheets: migrate: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) Rows(ctx context.Context, t Table) ([][]string, error) {
	var rows []sheetRow
	if err := p.db.WithContext(ctx).
		Where("sheet = ?", t.Name).
		Order("row_index ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("sheets: get %s: %w", t.Name, err)
	}

	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string(r.Cells)
	}
	return out, nil
}

func (p *PostgresStore) Append(ctx context.Context, t Table, row []string) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialise appends per sheet so row indexes stay dense.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", t.Name).Error; err != nil {
			return err
		}

		var next int
		if err := tx.Model(&sheetRow{}).
			Where("sheet = ?", t.Name).
			Select("COALESCE(MAX(row_index) + 1, 0)").
			Scan(&next).Error; err != nil {
			return fmt.Errorf("sheets: next index %s: %w", t.Name, err)
		}

		rec := sheetRow{Sheet: t.Name, RowIndex: next, Cells: pq.StringArray(row)}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("sheets: append %s: %w", t.Name, err)
		}
		return nil
	})
}

func (p *PostgresStore) UpdateRow(ctx context.Context, t Table, index int, row []string) error {
	res := p.db.WithContext(ctx).
		Model(&sheetRow{}).
		Where("sheet = ? AND row_index = ?", t.Name, index).
		Update("cells", pq.StringArray(padRow(row, t.Width())))
	if res.Error != nil {
		return fmt.Errorf("sheets: update %s row %d: %w", t.Name, index, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRowOutOfRange
	}
	return nil
}

func (p *PostgresStore) EnsureTable(ctx context.Context, t Table) error {
	var existing sheetTable
	err := p.db.WithContext(ctx).First(&existing, "name = ?", t.Name).Error
	if err == nil && len(existing.Headers) >= t.Width() {
		return nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("sheets: read header %s: %w", t.Name, err)
	}

	rec := sheetTable{Name: t.Name, Headers: pq.StringArray(t.Headers)}
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"headers"}),
	}).Create(&rec).Error
}
