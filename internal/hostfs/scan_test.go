package hostfs

import (
	"os"
	"path/filepath"
	"testing"
)

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestScanContestantsFindsSolutionByExtensionPriority(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "alice", "sum.py"), "print(1)")
	mustWrite(t, filepath.Join(root, "alice", "sum.cpp"), "int main(){}")

	contestants, err := ScanContestants(root, []string{"sum"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contestants) != 1 {
		t.Fatalf("expected 1 contestant, got %d", len(contestants))
	}
	path, ok := contestants[0].SolutionFor("sum")
	if !ok || filepath.Ext(path) != ".py" {
		t.Fatalf("expected .py to win priority, got %s", path)
	}
}

func TestDiscoverTestCasesSubdirLayout(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "test1", "sum.INP"), "1 2")
	mustWrite(t, filepath.Join(root, "test1", "sum.OUT"), "3")
	mustWrite(t, filepath.Join(root, "test2", "input.txt"), "4 5")
	mustWrite(t, filepath.Join(root, "test2", "output.txt"), "9")

	cases, err := DiscoverTestCases(root, "sum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d: %+v", len(cases), cases)
	}
}

func TestDiscoverTestCasesFlatLayout(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "1.in"), "1 2")
	mustWrite(t, filepath.Join(root, "1.out"), "3")
	mustWrite(t, filepath.Join(root, "2.in"), "4 5")
	mustWrite(t, filepath.Join(root, "2.out"), "9")

	cases, err := DiscoverTestCases(root, "sum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d: %+v", len(cases), cases)
	}
}

func TestScanProblemIDsSorted(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "b", "placeholder"), "")
	mustWrite(t, filepath.Join(root, "a", "placeholder"), "")

	ids, err := ScanProblemIDs(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
