package model

import (
	"sync"

	ojerrors "github.com/fouguai/judgecore/internal/errors"
)

// TestCase is one (input, expected-output) pair with a scoring weight.
// Order within a Problem's TestCases is stable and determines reporting
// indices.
type TestCase struct {
	InputPath          string
	ExpectedOutputPath string
	Weight             float64
}

// IOMode selects how a solution is expected to communicate.
type IOMode int

const (
	IOModeAuto IOMode = iota
	IOModeStandard
	IOModeFile

	// IOModeUnset marks a per-problem override that did not specify an
	// io_mode at all, distinct from an override explicitly set to "auto".
	// Only OverrideFor ever produces this value.
	IOModeUnset IOMode = -1
)

func (m IOMode) String() string {
	switch m {
	case IOModeStandard:
		return "standard"
	case IOModeFile:
		return "file"
	default:
		return "auto"
	}
}

// ParseIOMode maps a config string onto an IOMode, defaulting to Auto for
// anything unrecognized — this is the single point where the teacher's
// duck-typed `getattr(settings, 'io_mode', 'auto')` becomes an explicit
// enum with an explicit default, per the Design Notes.
func ParseIOMode(s string) IOMode {
	switch s {
	case "standard":
		return IOModeStandard
	case "file":
		return IOModeFile
	default:
		return IOModeAuto
	}
}

// ProblemSettings resolves the effective time/memory/io-mode for a
// problem, falling back to global defaults when no override is set.
type ProblemSettings struct {
	TimeLimitSeconds float64
	MemoryLimitMB    int
	IOMode           IOMode
}

// ResolveSettings merges a per-problem override onto global settings.
func ResolveSettings(global ProblemSettings, override *ProblemSettings) ProblemSettings {
	if override == nil {
		return global
	}
	out := global
	if override.TimeLimitSeconds > 0 {
		out.TimeLimitSeconds = override.TimeLimitSeconds
	}
	if override.MemoryLimitMB > 0 {
		out.MemoryLimitMB = override.MemoryLimitMB
	}
	if override.IOMode != IOModeUnset {
		out.IOMode = override.IOMode
	}
	return out
}

// Problem owns an ordered, lazily-loaded set of test cases. Once loaded the
// sequence is frozen for the run — TestCases() returns the same slice every
// time after the first successful Load.
type Problem struct {
	ID       string
	Name     string
	Dir      string
	Settings ProblemSettings

	mu    sync.Mutex
	tests []TestCase
}

// NewProblem constructs a Problem; test cases are attached via Load.
func NewProblem(id, name, dir string, settings ProblemSettings) (*Problem, error) {
	if id == "" {
		return nil, ojerrors.ValidationError("problem_id", "required")
	}
	return &Problem{ID: id, Name: name, Dir: dir, Settings: settings}, nil
}

// Load freezes the problem's test case sequence. Calling Load again after a
// successful load is a no-op — the sequence does not change mid-run.
func (p *Problem) Load(tests []TestCase) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tests != nil {
		return
	}
	cp := make([]TestCase, len(tests))
	copy(cp, tests)
	p.tests = cp
}

// TestCases returns the frozen test case sequence, or nil if never loaded.
func (p *Problem) TestCases() []TestCase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tests
}
