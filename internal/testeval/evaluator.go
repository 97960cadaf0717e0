// Package testeval runs one solution against one test case and classifies
// the outcome, grounded on the staging/recovery/classification pipeline in
// the teacher's DefaultRunner.Run combined with mapRunVerdict, generalized
// from the teacher's containerized bind-mount staging to direct
// filesystem staging in the solution's own directory.
package testeval

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"

	"github.com/fouguai/judgecore/internal/model"
	"github.com/fouguai/judgecore/internal/procrunner"
	"github.com/fouguai/judgecore/internal/scheduler"
)

// Request bundles everything needed to run one test case.
type Request struct {
	SolutionPath string
	TestCase     model.TestCase
	Settings     model.ProblemSettings
	ProblemID    string
	IOInfo       model.IoDetectionResult
	// Pool, when non-nil, has the spawned child registered for the
	// duration of the run so CancelAll can force-kill it.
	Pool *scheduler.Pool
}

// launchTemplates maps an extension to a `{src}`-templated launch command,
// expanded and tokenized the same way the teacher's buildCommand expands
// `{src}`/`{bin}` in a compile/run template.
var launchTemplates = map[string]string{
	".py":   "python {src}",
	".java": "java {src}",
}

// commandFor selects the interpreter/launcher/binary invocation by
// extension, per §6 Runner invocations.
func commandFor(solutionPath string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(solutionPath))
	if tpl, ok := launchTemplates[ext]; ok {
		return expandTemplate(tpl, solutionPath)
	}
	switch ext {
	case ".c", ".cpp":
		bin := strings.TrimSuffix(solutionPath, ext)
		return []string{exeName(bin)}, nil
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}

func exeName(base string) string {
	if strings.HasSuffix(strings.ToLower(base), ".exe") {
		return base
	}
	return base
}

// expandTemplate tokenizes the template the same way the teacher's
// buildCommand does and then substitutes `{src}` in each token, so a
// solution path with spaces stays one argument whether or not the template
// quotes it.
func expandTemplate(tpl, solutionPath string) ([]string, error) {
	fields, err := shlex.Split(tpl)
	if err != nil {
		return nil, fmt.Errorf("parse launch template %q: %w", tpl, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("launch template %q expanded to empty command", tpl)
	}
	for i, f := range fields {
		fields[i] = strings.ReplaceAll(f, "{src}", solutionPath)
	}
	return fields, nil
}

// ioCompatible checks the io-mode compatibility gate of §4.4 step 2.
func ioCompatible(mode model.IOMode, info model.IoDetectionResult) (bool, string) {
	if info.Adaptive {
		return true, ""
	}
	switch mode {
	case model.IOModeStandard:
		if info.HasFileIO() {
			return false, fmt.Sprintf("solution uses file I/O (%s) but problem requires standard I/O", strings.Join(info.MethodNames(), ", "))
		}
	case model.IOModeFile:
		if !info.HasFileIO() {
			return false, "problem requires file I/O but solution only uses standard I/O"
		}
	}
	return true, ""
}

type stagePlan struct {
	writeInputFile bool
	deleteOutput   bool
	feedStdin      bool
	detachStdin    bool
	inputFileName  string
	outputFileName string
}

// plan implements the staging algorithm of §4.4.
func plan(mode model.IOMode, info model.IoDetectionResult) stagePlan {
	inputName := info.InputFile
	outputName := info.OutputFile

	if info.Adaptive {
		return stagePlan{writeInputFile: true, deleteOutput: true, feedStdin: true, inputFileName: inputName, outputFileName: outputName}
	}
	if mode == model.IOModeStandard {
		return stagePlan{feedStdin: true}
	}
	if mode == model.IOModeFile || (mode == model.IOModeAuto && info.HasFileIO()) {
		p := stagePlan{writeInputFile: true, deleteOutput: true, inputFileName: inputName, outputFileName: outputName}
		if info.Methods[model.MethodFreopenStdin] {
			p.feedStdin = true
		} else {
			p.detachStdin = true
		}
		return p
	}
	return stagePlan{feedStdin: true}
}

// Run executes req against the process runner and returns a classified
// TestCaseResult, never returning a Go error: every failure mode maps to a
// TestCaseResult status, per the Error Handling Design.
func Run(ctx context.Context, req Request) model.TestCaseResult {
	cmd, err := commandFor(req.SolutionPath)
	if err != nil {
		return model.TestCaseResult{Status: model.RuntimeError, ErrorMessage: err.Error()}
	}

	if ok, msg := ioCompatible(req.Settings.IOMode, req.IOInfo); !ok {
		return model.TestCaseResult{Status: model.RuntimeError, ErrorMessage: msg}
	}

	inputBytes, err := os.ReadFile(req.TestCase.InputPath)
	if err != nil {
		return model.TestCaseResult{Status: model.RuntimeError, ErrorMessage: err.Error()}
	}
	expectedBytes, err := os.ReadFile(req.TestCase.ExpectedOutputPath)
	if err != nil {
		return model.TestCaseResult{Status: model.RuntimeError, ErrorMessage: err.Error()}
	}
	expected := string(expectedBytes)

	solutionDir := filepath.Dir(req.SolutionPath)
	sp := plan(req.Settings.IOMode, req.IOInfo)

	var stagedInputPath, stagedOutputPath string
	if sp.writeInputFile && sp.inputFileName != "" {
		stagedInputPath = filepath.Join(solutionDir, sp.inputFileName)
		if err := os.WriteFile(stagedInputPath, inputBytes, 0644); err != nil {
			return model.TestCaseResult{Status: model.RuntimeError, ErrorMessage: err.Error()}
		}
		defer os.Remove(stagedInputPath)
	}
	if sp.deleteOutput && sp.outputFileName != "" {
		stagedOutputPath = filepath.Join(solutionDir, sp.outputFileName)
		os.Remove(stagedOutputPath)
		defer os.Remove(stagedOutputPath)
	}

	stdin := procrunner.StdinSource{Detached: sp.detachStdin}
	if sp.feedStdin {
		stdin = procrunner.StdinSource{Bytes: inputBytes}
	}

	timeLimit := req.Settings.TimeLimitSeconds

	runCtx := ctx
	if req.Pool != nil {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithCancel(ctx)
		req.Pool.RegisterChild(req.SolutionPath, cancel)
		defer req.Pool.UnregisterChild(req.SolutionPath)
		defer cancel()
	}

	runRes, err := procrunner.Run(runCtx, procrunner.Request{
		Cmd:        cmd,
		Stdin:      stdin,
		TimeoutSec: timeLimit,
		WorkDir:    solutionDir,
	})
	if err != nil {
		return model.TestCaseResult{Status: model.RuntimeError, ErrorMessage: err.Error()}
	}

	actual := recoverOutput(runRes.Stdout, stagedOutputPath, req.IOInfo.Adaptive)

	result := classify(runRes, timeLimit, float64(req.Settings.MemoryLimitMB), expected, actual)
	result.InputExcerpt = model.Excerpt(string(inputBytes))
	result.ExpectedOutput = model.Excerpt(expected)
	result.ActualOutput = model.Excerpt(actual)
	result.ExecutionTime = runRes.ElapsedS
	result.MemoryUsedMB = runRes.PeakRSSMB
	return result
}

// recoverOutput implements §4.4 Output recovery.
func recoverOutput(stdout string, stagedOutputPath string, adaptive bool) string {
	var fileContent string
	haveFile := false
	if stagedOutputPath != "" {
		if b, err := os.ReadFile(stagedOutputPath); err == nil && len(b) > 0 {
			fileContent = string(b)
			haveFile = true
		}
	}
	if !adaptive {
		if haveFile {
			return fileContent
		}
		return stdout
	}
	switch {
	case haveFile && stdout != "":
		if len(fileContent) >= len(stdout) {
			return fileContent
		}
		return stdout
	case haveFile:
		return fileContent
	default:
		return stdout
	}
}

// classify applies the priority order of §4.4 step 7.
func classify(runRes procrunner.Result, timeLimit, memLimitMB float64, expected, actual string) model.TestCaseResult {
	if runRes.ExitCode == -1 && runRes.ElapsedS >= timeLimit {
		return model.TestCaseResult{Status: model.TimeLimitExceeded, ErrorMessage: "time limit exceeded"}
	}
	if memLimitMB > 0 && runRes.PeakRSSMB > memLimitMB {
		return model.TestCaseResult{Status: model.MemoryLimitExceeded, ErrorMessage: "memory limit exceeded"}
	}
	if runRes.ExitCode != 0 {
		return model.TestCaseResult{Status: model.RuntimeError, ErrorMessage: runRes.Stderr}
	}
	if outputsEqual(expected, actual) {
		return model.TestCaseResult{Status: model.Correct}
	}
	return model.TestCaseResult{Status: model.WrongAnswer}
}

// outputsEqual implements §4.4 Output comparison.
func outputsEqual(expected, actual string) bool {
	expLines := splitTrimmedLines(expected)
	actLines := splitTrimmedLines(actual)
	if len(expLines) != len(actLines) {
		return false
	}
	for i := range expLines {
		if expLines[i] != actLines[i] {
			return false
		}
	}
	return true
}

func splitTrimmedLines(s string) []string {
	s = strings.TrimRight(s, " \t\r\n")
	if s == "" {
		return nil
	}
	rawLines := strings.Split(s, "\n")
	out := make([]string, len(rawLines))
	for i, l := range rawLines {
		out[i] = strings.TrimSpace(strings.TrimSuffix(l, "\r"))
	}
	return out
}
