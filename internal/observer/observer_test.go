package observer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fouguai/judgecore/internal/model"
)

func TestNoopDiscardsEverything(t *testing.T) {
	var o Observer = Noop{}
	o.OnTestTick("c1", "p1", 1, 2)
	o.OnPartialResult(model.SubmissionResult{})
	o.OnFinalResult(model.SubmissionResult{})
	o.OnEvaluationFinished()
}

func TestConsoleWritesLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.OnTestTick("c1", "p1", 1, 3)
	c.OnEvaluationFinished()
	out := buf.String()
	if !strings.Contains(out, "c1/p1") || !strings.Contains(out, "1/3") {
		t.Fatalf("unexpected console output: %q", out)
	}
	if !strings.Contains(out, "evaluation finished") {
		t.Fatalf("missing finished line: %q", out)
	}
}

func TestRecordingCapturesSequence(t *testing.T) {
	r := NewRecording()
	r.OnTestTick("c1", "p1", 1, 2)
	r.OnTestTick("c1", "p1", 2, 2)
	r.OnFinalResult(model.SubmissionResult{ContestantID: "c1", ProblemID: "p1", Status: model.Correct})
	r.OnEvaluationFinished()

	if len(r.Ticks) != 2 || r.Ticks[1].Completed != 2 {
		t.Fatalf("unexpected ticks: %+v", r.Ticks)
	}
	if len(r.Finals) != 1 || r.Finals[0].Status != model.Correct {
		t.Fatalf("unexpected finals: %+v", r.Finals)
	}
	if r.Finished != 1 {
		t.Fatalf("expected Finished=1, got %d", r.Finished)
	}
}
