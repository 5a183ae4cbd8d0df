// Package stacktrace renders compact call stacks for panic logs.
package stacktrace

import (
	"fmt"
	"runtime"
	"strings"
)

const maxDepth = 32

// Internal returns "internal/<pkg>/<file>.go:<line>" entries for the frames of
// the calling goroutine that belong to this module's internal tree. skip
// counts frames above the caller of Internal.
func Internal(skip int) []string {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var out []string
	for {
		frame, more := frames.Next()
		if path, ok := trimInternal(frame.File); ok {
			out = append(out, fmt.Sprintf("%s:%d", path, frame.Line))
		}
		if !more {
			break
		}
	}

	return out
}

func trimInternal(file string) (string, bool) {
	idx := strings.LastIndex(file, "/internal/")
	if idx == -1 || strings.Contains(file, "/internal/pkg/stacktrace/") {
		return "", false
	}

	return file[idx+1:], true
}
