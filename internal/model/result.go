package model

import "sync"

const excerptLimit = 100

// Excerpt truncates s to at most 100 characters, appending an ellipsis when
// truncated, per the Data Model §3 invariant on stored excerpts.
func Excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= excerptLimit {
		return s
	}
	return string(runes[:excerptLimit]) + "…"
}

// TestCaseResult is the outcome of running one test case.
type TestCaseResult struct {
	Status         Status
	ExecutionTime  float64 // seconds
	MemoryUsedMB   float64
	ErrorMessage   string
	InputExcerpt   string
	ExpectedOutput string
	ActualOutput   string
}

// SubmissionResult is the lifecycle-owning aggregate for one
// (contestant, problem) pair: created empty, test-case results appended in
// order, score/status recomputed after each append while partial, and
// finalized once all test cases finish or the run is cancelled.
type SubmissionResult struct {
	mu sync.Mutex

	ContestantID string
	ProblemID    string

	Status        Status
	Score         float64
	MaxScore      float64
	ExecutionTime float64
	MemoryUsedMB  float64
	TestCases     []TestCaseResult
}

// NewSubmissionResult creates an empty, PENDING result for the pair.
func NewSubmissionResult(contestantID, problemID string) *SubmissionResult {
	return &SubmissionResult{ContestantID: contestantID, ProblemID: problemID, Status: Pending}
}

// Snapshot returns a value copy safe to hand to an observer without
// exposing the internal lock.
func (r *SubmissionResult) Snapshot() SubmissionResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := SubmissionResult{
		ContestantID:  r.ContestantID,
		ProblemID:     r.ProblemID,
		Status:        r.Status,
		Score:         r.Score,
		MaxScore:      r.MaxScore,
		ExecutionTime: r.ExecutionTime,
		MemoryUsedMB:  r.MemoryUsedMB,
		TestCases:     make([]TestCaseResult, len(r.TestCases)),
	}
	copy(cp.TestCases, r.TestCases)
	return cp
}

// Append adds a completed test-case result in order. Callers hold the
// result for the duration of one submission's evaluation, so Append is not
// exposed to other goroutines — the lock here guards only against a
// concurrent observer calling Snapshot.
func (r *SubmissionResult) Append(tc TestCaseResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.TestCases = append(r.TestCases, tc)
}

// SetAggregate overwrites the score/status/time/memory fields, used after
// each test case (partial) and once at the end (final).
func (r *SubmissionResult) SetAggregate(status Status, score, maxScore, execTime, memUsed float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = status
	r.Score = score
	r.MaxScore = maxScore
	r.ExecutionTime = execTime
	r.MemoryUsedMB = memUsed
}

// Len returns the number of test-case results appended so far.
func (r *SubmissionResult) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.TestCases)
}
