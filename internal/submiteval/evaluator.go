// Package submiteval drives one contestant's submission for one problem
// through compilation, every test case, and final scoring, grounded on
// the teacher's Worker.Execute loop in judge_service's sandbox worker:
// a fast-path/precondition check, then a sequential per-test-case loop
// emitting progress, then a final aggregate.
package submiteval

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fouguai/judgecore/internal/aggregator"
	"github.com/fouguai/judgecore/internal/compiler"
	"github.com/fouguai/judgecore/internal/iodetect"
	"github.com/fouguai/judgecore/internal/model"
	"github.com/fouguai/judgecore/internal/observer"
	"github.com/fouguai/judgecore/internal/scheduler"
	"github.com/fouguai/judgecore/internal/testeval"
)

// Deps bundles the collaborators the evaluator needs; Pool is optional and,
// when set, is checked for cooperative cancellation between test cases and
// handed to testeval so each spawned child is registered with it.
type Deps struct {
	Compiler *compiler.Cache
	Observer observer.Observer
	Pool     *scheduler.Pool
}

func isCLikeExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".c" || ext == ".cpp"
}

// Evaluate runs the full pipeline for one (contestant, problem) pair.
func Evaluate(ctx context.Context, deps Deps, contestant model.Contestant, problem *model.Problem) *model.SubmissionResult {
	result := model.NewSubmissionResult(contestant.ID, problem.ID)

	solutionPath, ok := contestant.SolutionFor(problem.ID)
	if !ok {
		return result
	}

	tests := problem.TestCases()
	if len(tests) == 0 {
		return result
	}

	sourcePath := solutionPath
	if isCLikeExt(sourcePath) {
		compileRes, err := deps.Compiler.Compile(ctx, sourcePath)
		if err != nil || !compileRes.OK {
			msg := "compilation failed"
			if err != nil {
				msg = err.Error()
			} else {
				msg = compileRes.Stderr
			}
			result.Append(model.TestCaseResult{Status: model.CompilationError, ErrorMessage: msg})
			result.SetAggregate(model.CompilationError, 0, weightSum(tests), 0, 0)
			emitFinal(deps.Observer, result)
			return result
		}
	}

	ioInfo := detectIOInfo(sourcePath, problem.ID)

	weights := make([]float64, len(tests))
	for i, tc := range tests {
		weights[i] = tc.Weight
	}

	for i, tc := range tests {
		if deps.Pool != nil && deps.Pool.Cancelled() {
			break
		}

		tcResult := testeval.Run(ctx, testeval.Request{
			SolutionPath: solutionPath,
			TestCase:     tc,
			Settings:     problem.Settings,
			ProblemID:    problem.ID,
			IOInfo:       ioInfo,
			Pool:         deps.Pool,
		})
		result.Append(tcResult)

		completed := i + 1
		deps.Observer.OnTestTick(contestant.ID, problem.ID, completed, len(tests))

		status, score, maxScore, execTime, memUsed := aggregator.Aggregate(resultsSoFar(result), weights[:completed])
		result.SetAggregate(status, score, maxScore, execTime, memUsed)
		deps.Observer.OnPartialResult(result.Snapshot())
	}

	emitFinal(deps.Observer, result)
	return result
}

func resultsSoFar(result *model.SubmissionResult) []model.TestCaseResult {
	snap := result.Snapshot()
	return snap.TestCases
}

func weightSum(tests []model.TestCase) float64 {
	var sum float64
	for _, tc := range tests {
		sum += tc.Weight
	}
	return sum
}

func emitFinal(obs observer.Observer, result *model.SubmissionResult) {
	obs.OnFinalResult(result.Snapshot())
}

func detectIOInfo(sourcePath, problemID string) model.IoDetectionResult {
	if !iodetect.IsCLike(sourcePath) {
		return model.IoDetectionResult{Methods: map[model.IOMethod]bool{}}
	}
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return model.IoDetectionResult{Methods: map[model.IOMethod]bool{}}
	}
	return iodetect.Detect(sourcePath, string(content), problemID)
}
