// Package procrunner executes one child process per call, sampling its
// resident memory and enforcing a wall-clock timeout. This is the
// re-targeted counterpart of the teacher's engine.Engine.Run /
// DefaultRunner.Run contract: the teacher drives a containerized sandbox
// (cgroups, bind mounts, a runc-style engine); this module has no
// container runtime available to it, so the same call shape is kept and
// retargeted directly onto os/exec plus gopsutil/v3 for measurement.
package procrunner

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	ojerrors "github.com/fouguai/judgecore/internal/errors"
)

const (
	sampleInterval   = 50 * time.Millisecond
	watchdogMultiple = 1.2
	spillThreshold   = 1 << 20 // 1 MiB
	timeoutExitCode  = -1
)

// StdinSource selects how the child's stdin is populated.
type StdinSource struct {
	// Bytes, when non-nil, is piped to the child (or spilled to a temp
	// file first when larger than spillThreshold).
	Bytes []byte
	// FilePath, when non-empty, is opened and redirected as stdin directly.
	FilePath string
	// Detached, when true alongside empty Bytes/FilePath, means the child
	// gets no stdin at all (os.DevNull).
	Detached bool
}

// Request describes one process invocation.
type Request struct {
	Cmd        []string
	Stdin      StdinSource
	TimeoutSec float64
	WorkDir    string
}

// Result is what the caller observes from the child.
type Result struct {
	Stdout    string
	Stderr    string
	ElapsedS  float64
	PeakRSSMB float64
	ExitCode  int
}

// Run spawns req.Cmd and waits up to req.TimeoutSec, returning captured
// output, elapsed wall time, and peak RSS. Spawn failures are propagated
// to the caller; the memory sampler swallows its own errors since it is a
// best-effort measurement only.
func Run(ctx context.Context, req Request) (Result, error) {
	if len(req.Cmd) == 0 {
		return Result{}, ojerrors.ValidationError("cmd", "required")
	}

	stdinReader, spillPath, err := prepareStdin(req.Stdin)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if spillPath != "" {
			os.Remove(spillPath)
		}
	}()
	if closer, ok := stdinReader.(io.Closer); ok {
		defer closer.Close()
	}

	cmd := exec.Command(req.Cmd[0], req.Cmd[1:]...)
	cmd.Dir = req.WorkDir
	cmd.Stdin = stdinReader
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return Result{}, ojerrors.Wrapf(err, ojerrors.JudgeSystemError, "spawn process")
	}

	var peakRSS int64 // bytes, accessed atomically
	samplerDone := make(chan struct{})
	stopSampler := make(chan struct{})
	go sampleMemory(cmd.Process.Pid, &peakRSS, stopSampler, samplerDone)

	watchdogTimer := time.AfterFunc(time.Duration(req.TimeoutSec*watchdogMultiple*float64(time.Second)), func() {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	})

	start := time.Now()
	waitDone := make(chan error, 1)
	go func() { waitDone <- cmd.Wait() }()

	var waitErr error
	timedOut := false
	select {
	case waitErr = <-waitDone:
	case <-time.After(time.Duration(req.TimeoutSec * float64(time.Second))):
		timedOut = true
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
		waitErr = <-waitDone
	case <-ctx.Done():
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
		waitErr = <-waitDone
	}
	elapsed := time.Since(start).Seconds()
	watchdogTimer.Stop()

	close(stopSampler)
	<-samplerDone

	exitCode := 0
	switch {
	case timedOut:
		exitCode = timeoutExitCode
		elapsed = req.TimeoutSec
	case waitErr != nil:
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = timeoutExitCode
		}
	}

	return Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ElapsedS:  elapsed,
		PeakRSSMB: float64(atomic.LoadInt64(&peakRSS)) / (1024 * 1024),
		ExitCode:  exitCode,
	}, nil
}

// prepareStdin resolves the three stdin modes, spilling an in-memory
// buffer larger than spillThreshold to a temp file and returning it as a
// file source to avoid pipe-buffer deadlocks on large inputs.
func prepareStdin(src StdinSource) (io.Reader, string, error) {
	switch {
	case src.FilePath != "":
		f, err := os.Open(src.FilePath)
		if err != nil {
			return nil, "", ojerrors.Wrapf(err, ojerrors.InternalServerError, "open stdin file %s", src.FilePath)
		}
		return f, "", nil
	case len(src.Bytes) > spillThreshold:
		tmp, err := os.CreateTemp("", "judgecore-stdin-*")
		if err != nil {
			return nil, "", ojerrors.Wrapf(err, ojerrors.InternalServerError, "create stdin spill file")
		}
		if _, err := tmp.Write(src.Bytes); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return nil, "", ojerrors.Wrapf(err, ojerrors.InternalServerError, "write stdin spill file")
		}
		path := tmp.Name()
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			tmp.Close()
			os.Remove(path)
			return nil, "", ojerrors.Wrapf(err, ojerrors.InternalServerError, "rewind stdin spill file")
		}
		return tmp, path, nil
	case len(src.Bytes) > 0:
		return bytes.NewReader(src.Bytes), "", nil
	default:
		f, err := os.Open(os.DevNull)
		if err != nil {
			return nil, "", ojerrors.Wrapf(err, ojerrors.InternalServerError, "open null device")
		}
		return f, "", nil
	}
}

// sampleMemory polls the child's RSS every sampleInterval, updating peak
// atomically, until told to stop or the process is gone. Any inspection
// error is swallowed — this measurement is best-effort only.
func sampleMemory(pid int, peak *int64, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(sampleInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			proc, err := process.NewProcess(int32(pid))
			if err != nil {
				continue
			}
			info, err := proc.MemoryInfo()
			if err != nil || info == nil {
				continue
			}
			for {
				cur := atomic.LoadInt64(peak)
				if int64(info.RSS) <= cur {
					break
				}
				if atomic.CompareAndSwapInt64(peak, cur, int64(info.RSS)) {
					break
				}
			}
		}
	}
}
