// Package hostfs implements the filesystem conventions the engine expects
// the host to resolve: contestant/problem discovery and test-case
// pairing, per §6 External Interfaces. There is no teacher equivalent for
// this exact layout (the teacher stores submissions in object storage,
// not a directory tree) so this package is new, written in the style of
// the teacher's config/local_repository.go (a thin, os.ReadDir-based
// filesystem walker with the same error-wrapping convention).
package hostfs

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	ojerrors "github.com/fouguai/judgecore/internal/errors"
	"github.com/fouguai/judgecore/internal/model"
)

// solutionExtOrder is the fixed extension priority for picking a
// contestant's solution for a problem.
var solutionExtOrder = []string{".py", ".java", ".cpp", ".c"}

// ScanContestants reads root's immediate subdirectories as contestants,
// each one named by its directory name, with solutions discovered by
// `<problem_id>.<ext>` in priority order.
func ScanContestants(root string, problemIDs []string) ([]model.Contestant, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, ojerrors.Wrapf(err, ojerrors.InternalServerError, "read contestants root %s", root)
	}

	var out []model.Contestant
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		solutions := make(map[string]string)
		for _, problemID := range problemIDs {
			if path, ok := findSolution(dir, problemID); ok {
				solutions[problemID] = path
			}
		}
		c, err := model.NewContestant(entry.Name(), entry.Name(), dir, solutions)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func findSolution(contestantDir, problemID string) (string, bool) {
	for _, ext := range solutionExtOrder {
		candidate := filepath.Join(contestantDir, problemID+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// ScanProblemIDs lists root's immediate subdirectories as problem ids.
func ScanProblemIDs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, ojerrors.Wrapf(err, ojerrors.InternalServerError, "read problems root %s", root)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

var testDirNameRe = regexp.MustCompile(`(?i)^(test|\d+.*test.*|\d+)$`)

// DiscoverTestCases resolves a problem's test cases from its directory,
// per the discovery rules of §6: subdirectory layout first, flat layout
// otherwise.
func DiscoverTestCases(problemDir, problemID string) ([]model.TestCase, error) {
	entries, err := os.ReadDir(problemDir)
	if err != nil {
		return nil, ojerrors.Wrapf(err, ojerrors.InternalServerError, "read problem dir %s", problemDir)
	}

	var testDirs []string
	for _, entry := range entries {
		if entry.IsDir() && looksLikeTestDir(entry.Name()) {
			testDirs = append(testDirs, entry.Name())
		}
	}
	sort.Strings(testDirs)

	if len(testDirs) > 0 {
		var cases []model.TestCase
		for _, name := range testDirs {
			tc, ok, err := pairInDir(filepath.Join(problemDir, name), problemID)
			if err != nil {
				return nil, err
			}
			if ok {
				cases = append(cases, tc)
			}
		}
		return cases, nil
	}

	return pairFlatLayout(problemDir)
}

func looksLikeTestDir(name string) bool {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "test") || strings.Contains(lower, "test") {
		return true
	}
	return testDirNameRe.MatchString(lower)
}

// pairInDir implements the subdirectory pairing priority of §6.1: prefer
// <problem_id>.INP/.OUT (case-insensitive), else input.txt/output.txt,
// else any other case-insensitive match.
func pairInDir(dir, problemID string) (model.TestCase, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return model.TestCase{}, false, ojerrors.Wrapf(err, ojerrors.InternalServerError, "read test dir %s", dir)
	}

	byLower := make(map[string]string, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			byLower[strings.ToLower(e.Name())] = e.Name()
		}
	}

	if in, ok := byLower[strings.ToLower(problemID+".inp")]; ok {
		if out, ok := byLower[strings.ToLower(problemID+".out")]; ok {
			return model.TestCase{InputPath: filepath.Join(dir, in), ExpectedOutputPath: filepath.Join(dir, out), Weight: 1}, true, nil
		}
	}
	if in, ok := byLower["input.txt"]; ok {
		if out, ok := byLower["output.txt"]; ok {
			return model.TestCase{InputPath: filepath.Join(dir, in), ExpectedOutputPath: filepath.Join(dir, out), Weight: 1}, true, nil
		}
	}

	var inCandidate, outCandidate string
	for lower, actual := range byLower {
		if strings.Contains(lower, "in") && inCandidate == "" {
			inCandidate = actual
		}
		if strings.Contains(lower, "out") && outCandidate == "" {
			outCandidate = actual
		}
	}
	if inCandidate != "" && outCandidate != "" {
		return model.TestCase{InputPath: filepath.Join(dir, inCandidate), ExpectedOutputPath: filepath.Join(dir, outCandidate), Weight: 1}, true, nil
	}
	return model.TestCase{}, false, nil
}

// pairFlatLayout implements the §6.2 heuristic pairing of top-level files
// whose basenames look like inputs/outputs, sorted for stability.
func pairFlatLayout(dir string) ([]model.TestCase, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ojerrors.Wrapf(err, ojerrors.InternalServerError, "read problem dir %s", dir)
	}

	var inputs, outputs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lower := strings.ToLower(e.Name())
		switch {
		case strings.HasPrefix(lower, "inp") || strings.HasPrefix(lower, "in") || strings.HasSuffix(lower, ".in"):
			inputs = append(inputs, e.Name())
		case strings.HasPrefix(lower, "out") || strings.HasSuffix(lower, ".out"):
			outputs = append(outputs, e.Name())
		}
	}
	sort.Strings(inputs)
	sort.Strings(outputs)

	n := len(inputs)
	if len(outputs) < n {
		n = len(outputs)
	}
	cases := make([]model.TestCase, 0, n)
	for i := 0; i < n; i++ {
		cases = append(cases, model.TestCase{
			InputPath:          filepath.Join(dir, inputs[i]),
			ExpectedOutputPath: filepath.Join(dir, outputs[i]),
			Weight:             1,
		})
	}
	return cases, nil
}
