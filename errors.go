package activerecord

import "errors"

var (
	// ErrRecordNotFound is returned by Get and GetBy when no row matches.
	ErrRecordNotFound = errors.New("record not found")

	ErrInvalidWhere       = errors.New("invalid where arguments")
	ErrInvalidOrder       = errors.New("invalid order specification")
	ErrInvalidDirection   = errors.New("invalid order direction, expected asc or desc")
	ErrInvalidSelect      = errors.New("invalid select specification")
	ErrUnknownField       = errors.New("unknown field")
	ErrReadOnlyField      = errors.New("field is read-only")
	ErrNoClient           = errors.New("no adapter client configured")
	ErrUnexpectedResponse = errors.New("unexpected adapter response")
	ErrMissingID          = errors.New("record has no id")
	ErrNotQuery           = errors.New("scope is in mutation mode")
	ErrModelExists        = errors.New("model already registered")
	ErrModelNotFound      = errors.New("model not registered")
)
