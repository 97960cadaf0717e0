// Package observer defines the progress sink the engine reports through,
// grounded on the teacher's sandbox/observer.MetricsRecorder shape: a
// small interface plus a Noop default, generalized from compile/run
// metrics hooks to the judge's four-method streaming protocol.
package observer

import "github.com/fouguai/judgecore/internal/model"

// Observer is a sink for submission evaluation progress. Implementations
// must tolerate concurrent calls from any worker goroutine; the engine
// never holds a lock while invoking one.
type Observer interface {
	OnTestTick(contestantID, problemID string, completed, total int)
	OnPartialResult(result model.SubmissionResult)
	OnFinalResult(result model.SubmissionResult)
	OnEvaluationFinished()
}

// Noop discards every event; used when the host registers no observer.
type Noop struct{}

func (Noop) OnTestTick(string, string, int, int)    {}
func (Noop) OnPartialResult(model.SubmissionResult) {}
func (Noop) OnFinalResult(model.SubmissionResult)   {}
func (Noop) OnEvaluationFinished()                  {}
