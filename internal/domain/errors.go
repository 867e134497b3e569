package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams        = errors.New("bad_params")         // 400
	ErrBadRange         = errors.New("bad_range")          // 400: Range есть, но не парсится
	ErrNotFound         = errors.New("not_found")          // 404
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrUnexpected       = errors.New("unexpected")         // 500: I/O, БД и всё прочее
)
