package helpers

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAssignmentCode(t *testing.T) {
	codeRe := regexp.MustCompile(`^ASN-[0-9A-F]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := NewAssignmentCode()
		require.Regexp(t, codeRe, code)
		require.False(t, seen[code], "код должен быть уникальным")
		seen[code] = true
	}
}
