package adapter

import "errors"

var (
	ErrOperationConflict   = errors.New("adapter: more than one operation in a single chain")
	ErrEmptyInsert         = errors.New("adapter: insert without rows")
	ErrEmptyUpdate         = errors.New("adapter: update without values")
	ErrUnsupportedOperator = errors.New("adapter: unsupported filter operator")
	ErrInvalidLimit        = errors.New("adapter: limit must be positive")
	ErrEmptyTable          = errors.New("adapter: empty table name")
	ErrNoExecutor          = errors.New("adapter: chain has no executor")
)
