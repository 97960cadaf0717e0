// Package aggregator reduces a sequence of test-case results into the
// submission-level score, timing, memory, and status, grounded on the
// teacher's computeTotalScore / updateSubtaskState reduction in
// judgeconsumerlogic.go, generalized from the teacher's subtask/binary
// scoring model to per-test-case weights.
package aggregator

import "github.com/fouguai/judgecore/internal/model"

// Aggregate computes the §4.7 reduction over results paired by index with
// weights. An empty slice yields Pending with zero scores. Used for both
// the final aggregate (full slice) and each partial aggregate (a prefix).
func Aggregate(results []model.TestCaseResult, weights []float64) (status model.Status, score, maxScore, execTime, memUsed float64) {
	if len(results) == 0 {
		return model.Pending, 0, 0, 0, 0
	}

	allCorrect := true
	var timeSum float64
	for i, r := range results {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		maxScore += w
		if r.Status == model.Correct {
			score += w
		} else {
			allCorrect = false
		}
		timeSum += r.ExecutionTime
		if r.MemoryUsedMB > memUsed {
			memUsed = r.MemoryUsedMB
		}
	}
	execTime = timeSum / float64(len(results))

	if allCorrect {
		return model.Correct, score, maxScore, execTime, memUsed
	}
	return reduceStatus(results), score, maxScore, execTime, memUsed
}

// reduceStatus scans the fixed priority list, returning the first status
// present among results; falls back to WrongAnswer when none match.
func reduceStatus(results []model.TestCaseResult) model.Status {
	present := make(map[model.Status]bool, len(results))
	for _, r := range results {
		present[r.Status] = true
	}
	for _, s := range model.StatusPriority() {
		if present[s] {
			return s
		}
	}
	return model.WrongAnswer
}
