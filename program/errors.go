package program

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotReady is returned when a program is needed but none has linked.
var ErrNotReady = errors.New("no linked shader program")

// Stage is the step of the build pipeline that failed.
type Stage int

const (
	StageCompile Stage = iota
	StageLink
)

func (s Stage) String() string {
	if s == StageLink {
		return "link"
	}
	return "compile"
}

// CompileError carries the driver (or translator) diagnostics of a failed
// build. The previously active program is unaffected by it.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to %s shader: %s", e.Stage, strings.TrimRight(e.Log, "\x00\n "))
}
