// Package httprange разбирает заголовок Range для отдачи байтовых диапазонов.
// Поддерживается ровно один диапазон (multi-range не нужен плееру).
package httprange

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnsatisfiable — синтаксис корректный, но диапазон вне файла.
var (
	ErrMalformed     = errors.New("malformed range")
	ErrUnsatisfiable = errors.New("unsatisfiable range")
)

// Parse разбирает rangeHeader относительно totalSize.
// Пустой заголовок — не ошибка: ok=false, диапазон не запрошен.
// Возвращаемые границы включающие: [start, end].
func Parse(rangeHeader string, totalSize int64) (start, end int64, ok bool, err error) {
	if rangeHeader == "" {
		return 0, 0, false, nil
	}
	if !strings.HasPrefix(rangeHeader, "bytes=") {
		return 0, 0, false, ErrMalformed
	}
	spec := strings.TrimPrefix(rangeHeader, "bytes=")
	if strings.Contains(spec, ",") {
		// multi-range не поддерживаем
		return 0, 0, false, ErrMalformed
	}
	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false, ErrMalformed
	}

	switch {
	// bytes=A-B
	case parts[0] != "" && parts[1] != "":
		a, e1 := strconv.ParseInt(parts[0], 10, 64)
		b, e2 := strconv.ParseInt(parts[1], 10, 64)
		if e1 != nil || e2 != nil || a < 0 || b < a {
			return 0, 0, false, ErrMalformed
		}
		start, end = a, b

	// bytes=A-  (от A до конца)
	case parts[0] != "" && parts[1] == "":
		a, e := strconv.ParseInt(parts[0], 10, 64)
		if e != nil || a < 0 {
			return 0, 0, false, ErrMalformed
		}
		start, end = a, totalSize-1

	// bytes=-N  (последние N байт)
	case parts[0] == "" && parts[1] != "":
		n, e := strconv.ParseInt(parts[1], 10, 64)
		if e != nil || n <= 0 {
			return 0, 0, false, ErrMalformed
		}
		if n > totalSize {
			n = totalSize
		}
		start, end = totalSize-n, totalSize-1

	default:
		return 0, 0, false, ErrMalformed
	}

	if start >= totalSize {
		return 0, 0, false, ErrUnsatisfiable
	}
	if end >= totalSize {
		end = totalSize - 1
	}
	return start, end, true, nil
}
