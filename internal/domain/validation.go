package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ссылка на блоб подставляется в путь файловой системы, поэтому
// никаких разделителей и точек-переходов: только имя файла.
var blobRefRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

func ValidBlobRef(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return blobRefRe.MatchString(s)
}

// NewBlobRef генерирует устойчивое к коллизиям имя файла:
// <unix-millis>_<короткий uuid><расширение исходного имени>.
// Расширение берём из hintName, всё подозрительное отбрасываем.
func NewBlobRef(hintName string) string {
	ext := strings.ToLower(filepath.Ext(hintName))
	if !validExt(ext) {
		ext = ""
	}
	short := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), short, ext)
}

func validExt(ext string) bool {
	if ext == "" || len(ext) > 8 {
		return false
	}
	for _, r := range ext[1:] {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
