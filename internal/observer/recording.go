package observer

import (
	"sync"

	"github.com/fouguai/judgecore/internal/model"
)

// Tick is one recorded OnTestTick call.
type Tick struct {
	ContestantID, ProblemID string
	Completed, Total        int
}

// Recording accumulates every event it receives, safe for concurrent use.
// It exists for tests that need to assert on the exact event sequence the
// engine produced.
type Recording struct {
	mu       sync.Mutex
	Ticks    []Tick
	Partials []model.SubmissionResult
	Finals   []model.SubmissionResult
	Finished int
}

// NewRecording returns an empty Recording.
func NewRecording() *Recording {
	return &Recording{}
}

func (r *Recording) OnTestTick(contestantID, problemID string, completed, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Ticks = append(r.Ticks, Tick{contestantID, problemID, completed, total})
}

func (r *Recording) OnPartialResult(result model.SubmissionResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Partials = append(r.Partials, result)
}

func (r *Recording) OnFinalResult(result model.SubmissionResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Finals = append(r.Finals, result)
}

func (r *Recording) OnEvaluationFinished() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Finished++
}
