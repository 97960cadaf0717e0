package observer

import (
	"fmt"
	"io"
	"sync"

	"github.com/fouguai/judgecore/internal/model"
)

// Console prints progress to an io.Writer as events arrive; its own
// internal lock serializes writes from concurrent workers so lines never
// interleave mid-write.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole wraps w for use as an Observer.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) OnTestTick(contestantID, problemID string, completed, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%s/%s] %d/%d\n", contestantID, problemID, completed, total)
}

func (c *Console) OnPartialResult(result model.SubmissionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%s/%s] partial %.1f/%.1f (%s)\n", result.ContestantID, result.ProblemID, result.Score, result.MaxScore, result.Status)
}

func (c *Console) OnFinalResult(result model.SubmissionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%s/%s] final %.1f/%.1f (%s)\n", result.ContestantID, result.ProblemID, result.Score, result.MaxScore, result.Status)
}

func (c *Console) OnEvaluationFinished() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, "evaluation finished")
}
