package stacktrace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimInternal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		want string
		ok   bool
	}{
		{name: "module file", file: "/src/bazaar/internal/identity/ledger/ledger.go", want: "internal/identity/ledger/ledger.go", ok: true},
		{name: "stdlib file", file: "/usr/local/go/src/runtime/panic.go", ok: false},
		{name: "self", file: "/src/bazaar/internal/pkg/stacktrace/stacktrace.go", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := trimInternal(tt.file)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInternal_SkipsForeignFrames(t *testing.T) {
	t.Parallel()

	// test binaries run from the module directory, so only the trimmed shape is checked
	for _, frame := range Internal(0) {
		assert.True(t, strings.HasPrefix(frame, "internal/"), frame)
	}
}
