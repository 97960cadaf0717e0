package model

import (
	"os"

	ojerrors "github.com/fouguai/judgecore/internal/errors"
)

// Contestant is an immutable identity owning zero or more solutions, one
// per problem id. The host constructs these from its directory scan (see
// internal/hostfs) and the engine only ever reads them.
type Contestant struct {
	ID        string
	Name      string
	Dir       string
	Solutions map[string]string // problem id -> solution source path
}

// NewContestant validates and constructs a Contestant. Solution paths, if
// present, must point to readable files — this is enforced eagerly so a
// bad directory scan fails fast instead of surfacing mid-judge.
func NewContestant(id, name, dir string, solutions map[string]string) (Contestant, error) {
	if id == "" {
		return Contestant{}, ojerrors.ValidationError("contestant_id", "required")
	}
	for problemID, path := range solutions {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return Contestant{}, ojerrors.Wrapf(err, ojerrors.ValidationFailed, "solution for problem %s unreadable", problemID)
		}
	}
	cp := make(map[string]string, len(solutions))
	for k, v := range solutions {
		cp[k] = v
	}
	return Contestant{ID: id, Name: name, Dir: dir, Solutions: cp}, nil
}

// SolutionFor returns the solution path for a problem id, and whether one
// exists.
func (c Contestant) SolutionFor(problemID string) (string, bool) {
	path, ok := c.Solutions[problemID]
	return path, ok && path != ""
}
