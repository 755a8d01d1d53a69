package loader

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/agentdeck/internal/catalog"
)

// sqliteQuery reads the tools table in insertion order. List, plan and link
// columns hold JSON text.
const sqliteQuery = `
SELECT name, category, description, agent_capabilities, interfaces, tags,
       pricing_usd, pricing_source, links, notes, autonomy_level
FROM tools
ORDER BY rowid`

// readSQLite opens the database read-only; the catalog is never written.
func readSQLite(ctx context.Context, path string) ([]catalog.RawRecord, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", "file:"+abs+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	rows, err := db.QueryContext(ctx, sqliteQuery)
	if err != nil {
		return nil, fmt.Errorf("query tools: %w", err)
	}
	defer rows.Close()

	var raw []catalog.RawRecord
	for rows.Next() {
		var (
			name, category, description, capabilities, interfaces, tags sql.NullString
			pricing, pricingSource, links, notes, autonomy              sql.NullString
		)
		if err := rows.Scan(&name, &category, &description, &capabilities, &interfaces, &tags,
			&pricing, &pricingSource, &links, &notes, &autonomy); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(raw), err)
		}

		rec := catalog.RawRecord{
			Name:          name.String,
			Category:      category.String,
			Description:   description.String,
			PricingSource: pricingSource.String,
			Notes:         notes.String,
			AutonomyLevel: catalog.LooseString(autonomy.String),
		}
		columns := []struct {
			name  string
			value sql.NullString
			dst   any
		}{
			{"agent_capabilities", capabilities, &rec.AgentCapabilities},
			{"interfaces", interfaces, &rec.Interfaces},
			{"tags", tags, &rec.Tags},
			{"pricing_usd", pricing, &rec.PricingUSD},
			{"links", links, &rec.Links},
		}
		for _, col := range columns {
			if !col.value.Valid || col.value.String == "" {
				continue
			}
			if err := json.Unmarshal([]byte(col.value.String), col.dst); err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", len(raw), col.name, err)
			}
		}
		raw = append(raw, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tools: %w", err)
	}
	return raw, nil
}
