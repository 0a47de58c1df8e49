package checks

import (
	"fmt"
	"sort"
	"sync"

	"anime-tracker/core/database"
	"anime-tracker/feature/catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport strictly types the result of a schema integrity check.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// expectedTables resolves the catalog tables and their columns from the GORM
// models, including the genre join table.
func expectedTables(db *gorm.DB) (map[string][]string, error) {
	cache := &sync.Map{}
	tables := make(map[string][]string)

	for _, model := range []any{&models.Title{}, &models.Genre{}} {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}
		tables[s.Table] = s.DBNames

		for _, rel := range s.Relationships.Many2Many {
			if rel.JoinTable != nil {
				tables[rel.JoinTable.Table] = rel.JoinTable.DBNames
			}
		}
	}
	return tables, nil
}

// CheckSchema verifies the database schema using the catalog models as the source of truth.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	expected, err := expectedTables(db)
	if err != nil {
		return nil, err
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport, len(expected)),
		Errors:  []string{},
	}

	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, table := range names {
		columns := expected[table]
		tbl := TableReport{MissingColumns: []string{}, Status: "ok"}

		actual, err := database.GetTableColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			tbl.Status = "error"
			report.Tables[table] = tbl
			continue
		}
		if len(actual) == 0 {
			tbl.MissingColumns = append(tbl.MissingColumns, columns...)
			tbl.Status = "missing"
			report.Matched = false
			report.Tables[table] = tbl
			continue
		}

		missing, err := database.MissingColumns(db, table, columns)
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			report.Matched = false
			tbl.Status = "error"
		} else if len(missing) > 0 {
			tbl.MissingColumns = missing
			tbl.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}
