package aggregator

import (
	"testing"

	"github.com/fouguai/judgecore/internal/model"
)

func TestAggregateEmpty(t *testing.T) {
	status, score, maxScore, _, _ := Aggregate(nil, nil)
	if status != model.Pending || score != 0 || maxScore != 0 {
		t.Fatalf("expected Pending/0/0, got %v %v %v", status, score, maxScore)
	}
}

func TestAggregateAllCorrect(t *testing.T) {
	results := []model.TestCaseResult{
		{Status: model.Correct, ExecutionTime: 1, MemoryUsedMB: 10},
		{Status: model.Correct, ExecutionTime: 3, MemoryUsedMB: 20},
	}
	weights := []float64{1, 2}
	status, score, maxScore, execTime, mem := Aggregate(results, weights)
	if status != model.Correct {
		t.Fatalf("expected Correct, got %v", status)
	}
	if score != 3 || maxScore != 3 {
		t.Fatalf("expected score=max=3, got score=%v max=%v", score, maxScore)
	}
	if execTime != 2 {
		t.Fatalf("expected mean exec time 2, got %v", execTime)
	}
	if mem != 20 {
		t.Fatalf("expected max mem 20, got %v", mem)
	}
}

func TestAggregateStatusPriority(t *testing.T) {
	results := []model.TestCaseResult{
		{Status: model.WrongAnswer},
		{Status: model.TimeLimitExceeded},
		{Status: model.RuntimeError},
	}
	weights := []float64{1, 1, 1}
	status, score, maxScore, _, _ := Aggregate(results, weights)
	if status != model.RuntimeError {
		t.Fatalf("expected RuntimeError to win priority, got %v", status)
	}
	if score != 0 || maxScore != 3 {
		t.Fatalf("expected score=0 max=3, got score=%v max=%v", score, maxScore)
	}
}

func TestAggregateFallsBackToWrongAnswer(t *testing.T) {
	results := []model.TestCaseResult{{Status: model.WrongAnswer}, {Status: model.Correct}}
	status, _, _, _, _ := Aggregate(results, []float64{1, 1})
	if status != model.WrongAnswer {
		t.Fatalf("expected WrongAnswer fallback, got %v", status)
	}
}
