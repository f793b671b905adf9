package activerecord

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/logger"
	"github.com/dmitrymomot/activerecord/pkg/validator"
)

// Validate runs every declared validator concurrently and aggregates failures
// per field. A model without validators is always valid.
func (r *Record) Validate(ctx context.Context) validator.Result {
	return validator.Validate(ctx, r, r.model.rules)
}

// Save validates the record and, when valid, inserts or updates it.
// An invalid record is returned as a failed result without any adapter call.
// Adapter errors are returned unchanged, next to the passing validation
// result, and leave the record state untouched.
func (r *Record) Save(ctx context.Context) (validator.Result, error) {
	res := r.Validate(ctx)
	if !res.Valid {
		return res, nil
	}

	b, err := r.model.from()
	if err != nil {
		return res, err
	}

	payload := r.payload()
	op := adapter.OpUpdate
	if r.isNewRecord {
		op = adapter.OpInsert
		b = b.Insert(payload)
	} else {
		id := r.ID()
		if id == nil {
			return res, fmt.Errorf("%w: cannot update %s", ErrMissingID, r.model.table)
		}
		b = b.Update(payload).Match(adapter.Row{IDField: id})
	}

	start := time.Now()
	resp, err := b.Execute(ctx)
	r.model.trace(ctx, op, start, err)
	if err != nil {
		return res, err
	}

	if r.isNewRecord {
		if row := resp.First(); row != nil {
			if id, ok := row[IDField]; ok {
				r.values[IDField] = id
			}
		}
		r.isNewRecord = false
	}
	r.markClean()

	return validator.Valid(), nil
}

// Delete removes the row matched by id. It is not gated by validation and
// leaves IsChanged and IsNewRecord as they are.
func (r *Record) Delete(ctx context.Context) error {
	b, err := r.model.from()
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = b.Delete().Match(adapter.Row{IDField: r.ID()}).Execute(ctx)
	r.model.trace(ctx, adapter.OpDelete, start, err)
	if err != nil {
		return err
	}

	r.deleted = true
	return nil
}

// Reload replaces the values with the stored row and clears the dirty state.
func (r *Record) Reload(ctx context.Context) error {
	id := r.ID()
	if id == nil {
		return ErrMissingID
	}

	fresh, err := r.model.Get(ctx, id)
	if err != nil {
		return err
	}

	r.values = fresh.values
	r.isNewRecord = false
	r.deleted = false
	r.markClean()
	return nil
}

func (m *Model) trace(ctx context.Context, op adapter.Operation, start time.Time, err error) {
	if err != nil {
		m.log().ErrorContext(ctx, "adapter call failed",
			logger.Model(m.name),
			logger.Table(m.table),
			logger.Operation(string(op)),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return
	}
	m.log().DebugContext(ctx, "adapter call",
		logger.Model(m.name),
		logger.Table(m.table),
		logger.Operation(string(op)),
		logger.Duration(time.Since(start)),
	)
}
