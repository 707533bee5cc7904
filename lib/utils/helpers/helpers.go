package helpers

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// NewAssignmentCode генерирует код вида ASN-XXXXXXXX
func NewAssignmentCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ASN-" + id[:8]
}

// NewFileKey генерирует уникальный ключ объекта с сохранением имени файла
func NewFileKey(fileName string) string {
	return uuid.NewString() + "_" + fileName
}
