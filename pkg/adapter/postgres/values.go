package postgres

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
)

// normalizeRows converts driver-specific values produced by pgx.RowToMap
// into plain Go values: NUMERIC becomes float64 (nil when NULL or not
// representable) and UUID becomes its canonical string.
func normalizeRows(rows []adapter.Row) []adapter.Row {
	for _, row := range rows {
		for k, v := range row {
			row[k] = normalizeValue(v)
		}
	}
	return rows
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case pgtype.Numeric:
		if !t.Valid || t.NaN || t.InfinityModifier != pgtype.Finite {
			return nil
		}
		f, err := t.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case [16]byte:
		return uuid.UUID(t).String()
	}
	return v
}
