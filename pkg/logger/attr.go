package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under the key "error". A nil err yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Model records the model name under the key "model".
func Model(name string) slog.Attr {
	return slog.String("model", name)
}

// Table records the table name under the key "table".
func Table(name string) slog.Attr {
	return slog.String("table", name)
}

// Operation records the adapter verb under the key "operation".
func Operation(op string) slog.Attr {
	return slog.String("operation", op)
}

// Filters records the number of applied filters.
func Filters(n int) slog.Attr {
	return slog.Int("filters", n)
}

// Rows records the number of rows returned or affected.
func Rows(n int) slog.Attr {
	return slog.Int("rows", n)
}

// RecordID records a record identifier under the key "record_id".
// If id is nil, it returns an empty Attr.
func RecordID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("record_id", id)
}

// Backend records the adapter backend name.
func Backend(name string) slog.Attr {
	return slog.String("backend", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
