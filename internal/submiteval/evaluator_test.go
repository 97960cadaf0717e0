package submiteval

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/fouguai/judgecore/internal/compiler"
	"github.com/fouguai/judgecore/internal/model"
	"github.com/fouguai/judgecore/internal/observer"
	"github.com/fouguai/judgecore/internal/scheduler"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestEvaluateNoSolutionIsPending(t *testing.T) {
	contestant, err := model.NewContestant("c1", "c1", "", map[string]string{})
	if err != nil {
		t.Fatalf("NewContestant: %v", err)
	}
	problem, err := model.NewProblem("p1", "p1", "", model.ProblemSettings{})
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	rec := observer.NewRecording()
	res := Evaluate(context.Background(), Deps{Compiler: compiler.New(), Observer: rec}, contestant, problem)
	if res.Status != model.Pending {
		t.Fatalf("expected Pending, got %v", res.Status)
	}
	if len(rec.Finals) != 0 {
		t.Fatalf("expected no final result emitted for a pending fast path")
	}
}

func TestEvaluatePythonSolutionAllCorrect(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix-only fixture")
	}
	dir := t.TempDir()
	solutionPath := filepath.Join(dir, "p1.py")
	writeFile(t, solutionPath, "import sys\nprint(sys.stdin.read().strip())\n")

	testDir := t.TempDir()
	in1 := filepath.Join(testDir, "1.in")
	out1 := filepath.Join(testDir, "1.out")
	writeFile(t, in1, "42\n")
	writeFile(t, out1, "42\n")

	contestant, err := model.NewContestant("c1", "c1", dir, map[string]string{"p1": solutionPath})
	if err != nil {
		t.Fatalf("NewContestant: %v", err)
	}
	problem, err := model.NewProblem("p1", "p1", testDir, model.ProblemSettings{TimeLimitSeconds: 5, MemoryLimitMB: 256, IOMode: model.IOModeStandard})
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	problem.Load([]model.TestCase{{InputPath: in1, ExpectedOutputPath: out1, Weight: 1}})

	rec := observer.NewRecording()
	pool := scheduler.New()
	res := Evaluate(context.Background(), Deps{Compiler: compiler.New(), Observer: rec, Pool: pool}, contestant, problem)

	if res.Status != model.Correct {
		t.Fatalf("expected Correct, got %v (%+v)", res.Status, res.TestCases)
	}
	if len(rec.Ticks) != 1 || rec.Ticks[0].Completed != 1 || rec.Ticks[0].Total != 1 {
		t.Fatalf("unexpected ticks: %+v", rec.Ticks)
	}
	if len(rec.Finals) != 1 {
		t.Fatalf("expected exactly one final result, got %d", len(rec.Finals))
	}

	// CancelAll after the evaluation has returned still sets the stop flag.
	pool.CancelAll()
	if !pool.Cancelled() {
		t.Fatalf("expected Cancelled() true")
	}
}
