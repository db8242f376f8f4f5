// Package runtime supervises the external tunnel runtime subprocess: it
// validates a compiled batch config, spawns the runtime, waits for its
// first inbound to become reachable, and guarantees teardown. The runtime
// binary itself is an external collaborator (spec.md Non-goals) — this
// package only manages the process lifecycle around it, grounded in
// _examples/original_source/core/engine.py's _is_config_valid /
// _wait_for_port / check_batch subprocess handling (spec §4.4, §6).
package runtime

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"

	"sentinel/internal/domain/runtimeconfig"
	"sentinel/internal/shared/errors"
	"sentinel/internal/shared/id"
	"sentinel/internal/shared/logger"
)

const (
	readinessAttemptTimeout = 300 * time.Millisecond
	readinessBackoff        = 100 * time.Millisecond
	readinessOverall        = 5 * time.Second
	earlyDeathSettle        = 300 * time.Millisecond
	postReadySettle         = 1 * time.Second
	killWaitTimeout         = 3 * time.Second
)

// Binary is the external tunnel runtime executable name, overridable for
// tests and for deployments that vendor it under a different name.
var Binary = "sing-box"

// Supervisor manages one runtime subprocess's lifecycle for a single
// batch run. A Supervisor is not reusable across batches; callers
// construct a new one per Run call.
type Supervisor struct {
	log     logger.Interface
	baseDir string
}

// New returns a Supervisor that stages its temp config files under
// baseDir (created if missing).
func New(log logger.Interface, baseDir string) *Supervisor {
	return &Supervisor{log: log.Named("runtime"), baseDir: baseDir}
}

// Handle represents a running runtime subprocess bound to a batch config.
// Callers MUST call Stop when done with it, even on error paths, to
// guarantee the process and its temp file are cleaned up.
type Handle struct {
	cmd        *exec.Cmd
	configPath string
	log        logger.Interface
}

// Validate writes cfg to a check_<8hex>.json temp file and runs
// `<runtime> check -c <file>` against it, reporting whether the runtime
// accepts the config. The temp file is always removed before returning.
func (s *Supervisor) Validate(ctx context.Context, cfg runtimeconfig.Config) (bool, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return false, errors.New(errors.KindRuntimeReject, "create base dir", err)
	}

	path, err := s.writeConfig("check_", cfg)
	if err != nil {
		return false, err
	}
	defer os.Remove(path)

	cmd := exec.CommandContext(ctx, Binary, "check", "-c", path)
	if err := cmd.Run(); err != nil {
		return false, nil
	}
	return true, nil
}

// Run writes cfg to a run_<8hex>.json temp file, spawns the runtime
// against it in its own process group, and blocks until the first
// inbound listener is reachable (or the readiness deadline elapses). The
// returned Handle must be stopped by the caller.
func (s *Supervisor) Run(ctx context.Context, cfg runtimeconfig.Config, firstPort int) (*Handle, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return nil, errors.New(errors.KindSpawnFail, "create base dir", err)
	}

	path, err := s.writeConfig("run_", cfg)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(Binary, "run", "-c", path)
	cmd.Stdout = nil
	if devnull, derr := os.OpenFile(os.DevNull, os.O_WRONLY, 0); derr == nil {
		cmd.Stdout = devnull
		defer devnull.Close()
	}
	cmd.Stderr = &capturedStderr{}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		os.Remove(path)
		return nil, errors.New(errors.KindSpawnFail, "start runtime process", err)
	}

	h := &Handle{cmd: cmd, configPath: path, log: s.log}

	exited := make(chan struct{})
	var waitOnce sync.Once
	var waitErr error
	go func() {
		waitErr = cmd.Wait()
		waitOnce.Do(func() { close(exited) })
	}()

	select {
	case <-time.After(earlyDeathSettle):
	case <-exited:
		h.teardown(nil)
		return nil, errors.New(errors.KindSpawnFail, "runtime exited immediately after spawn", waitErr)
	}

	if !waitForPort(ctx, "127.0.0.1", firstPort, readinessOverall) {
		h.teardown(exited)
		return nil, errors.New(errors.KindReadinessTimeout, "runtime did not open first inbound in time", nil)
	}

	time.Sleep(postReadySettle)
	return h, nil
}

// Stop kills the runtime process (if still alive) and removes its temp
// config file. Safe to call multiple times.
func (h *Handle) Stop() {
	h.teardown(nil)
}

func (h *Handle) teardown(alreadyExited <-chan struct{}) {
	if h.cmd != nil && h.cmd.Process != nil {
		if alreadyExited == nil || !closed(alreadyExited) {
			_ = h.cmd.Process.Kill()
			done := make(chan struct{})
			go func() {
				_ = h.cmd.Wait()
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(killWaitTimeout):
			}
		}
	}
	if h.configPath != "" {
		os.Remove(h.configPath)
	}
}

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func (s *Supervisor) writeConfig(prefix string, cfg runtimeconfig.Config) (string, error) {
	suffix, err := id.HexSuffix(4)
	if err != nil {
		return "", errors.New(errors.KindSpawnFail, "generate temp filename suffix", err)
	}
	path := filepath.Join(s.baseDir, prefix+suffix+".json")

	data, err := json.Marshal(cfg)
	if err != nil {
		return "", errors.New(errors.KindRuntimeReject, "marshal runtime config", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.New(errors.KindSpawnFail, "write runtime config", err)
	}
	return path, nil
}

// waitForPort polls host:port with a bounded per-attempt timeout and a
// fixed backoff between attempts, matching engine.py's _wait_for_port.
func waitForPort(ctx context.Context, host string, port int, overall time.Duration) bool {
	deadline := time.Now().Add(overall)
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	for time.Now().Before(deadline) {
		d := net.Dialer{Timeout: readinessAttemptTimeout}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err == nil {
			conn.Close()
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(readinessBackoff):
		}
	}
	return false
}

type capturedStderr struct {
	mu  sync.Mutex
	buf []byte
}

func (c *capturedStderr) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf = append(c.buf, p...)
	return len(p), nil
}

func (c *capturedStderr) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.buf)
}
