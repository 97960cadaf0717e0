// Package compiler compiles C/C++ solutions to native executables and
// memoizes successful builds by absolute source path, mirroring the
// compile half of the teacher's runner.DefaultRunner.Compile — re-targeted
// from a containerized build (bind mount + engine.Run) onto a direct
// os/exec invocation of the host toolchain, since this module's Process
// Runner has no container engine underneath it.
package compiler

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	ojerrors "github.com/fouguai/judgecore/internal/errors"
	"github.com/fouguai/judgecore/internal/logger"
	"go.uber.org/zap"
)

// Result is the outcome of a compile attempt.
type Result struct {
	OK         bool
	BinaryPath string
	Stderr     string
}

// Cache compiles C/C++ sources once per absolute path and remembers
// success; failures are never cached, since a repair/retry may succeed.
type Cache struct {
	entries sync.Map // absolute source path -> Result
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{}
}

// Reset purges every cached entry.
func (c *Cache) Reset() {
	c.entries.Range(func(key, _ interface{}) bool {
		c.entries.Delete(key)
		return true
	})
}

// Compile compiles sourcePath if needed and returns the resulting binary
// path. Non-C/C++ extensions are a no-op success: the source path is
// returned unchanged as the thing to execute.
func (c *Cache) Compile(ctx context.Context, sourcePath string) (Result, error) {
	ext := strings.ToLower(filepath.Ext(sourcePath))
	if ext != ".c" && ext != ".cpp" {
		return Result{OK: true, BinaryPath: sourcePath}, nil
	}

	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return Result{}, ojerrors.Wrapf(err, ojerrors.InternalServerError, "resolve absolute path for %s", sourcePath)
	}

	if cached, ok := c.entries.Load(abs); ok {
		return cached.(Result), nil
	}

	binaryPath := binaryPathFor(abs)
	res, err := c.compileFresh(ctx, ext, abs, binaryPath)
	if err != nil {
		return res, err
	}
	if res.OK {
		c.entries.Store(abs, res)
	}
	return res, nil
}

func (c *Cache) compileFresh(ctx context.Context, ext, abs, binaryPath string) (Result, error) {
	toolchain, args := buildCommand(ext, abs, binaryPath)

	cmd := exec.CommandContext(ctx, toolchain, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	logger.Debug(ctx, "compiling solution", zap.String("source", abs), zap.String("toolchain", toolchain))

	runErr := cmd.Run()
	if runErr != nil {
		if _, ok := runErr.(*exec.ExitError); ok {
			return Result{OK: false, Stderr: stderr.String()}, nil
		}
		return Result{}, ojerrors.Wrapf(runErr, ojerrors.JudgeSystemError, "invoke compiler for %s", abs)
	}
	return Result{OK: true, BinaryPath: binaryPath}, nil
}

// buildCommand assembles the fixed compile recipe: the C compiler with the
// math library linked on POSIX for .c, the C++ compiler with a modern
// standard flag and math library on POSIX for .cpp.
func buildCommand(ext, sourcePath, binaryPath string) (string, []string) {
	if ext == ".c" {
		args := []string{sourcePath, "-O2", "-o", binaryPath}
		if runtime.GOOS != "windows" {
			args = append(args, "-lm")
		}
		return "cc", args
	}
	args := []string{sourcePath, "-O2", "-std=c++20", "-o", binaryPath}
	if runtime.GOOS != "windows" {
		args = append(args, "-lm")
	}
	return "c++", args
}

// binaryPathFor places the output binary adjacent to the source with the
// same basename, adding a .exe suffix on Windows.
func binaryPathFor(sourcePath string) string {
	dir := filepath.Dir(sourcePath)
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	if runtime.GOOS == "windows" {
		base += ".exe"
	}
	return filepath.Join(dir, base)
}

// IsCompilable reports whether path needs this cache at all.
func IsCompilable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".c" || ext == ".cpp"
}
