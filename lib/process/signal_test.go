// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"slices"
	"syscall"
	"testing"

	"golang.org/x/sys/unix"
)

func TestParseSignal(t *testing.T) {
	tests := []struct {
		value string
		want  syscall.Signal
	}{
		{"45", syscall.Signal(45)},
		{"SIGUSR1", syscall.SIGUSR1},
		{"usr2", syscall.SIGUSR2},
		{"HUP", syscall.SIGHUP},
		{"RTMIN+11", syscall.Signal(45)},
		{"SIGRTMIN", syscall.Signal(34)},
	}
	for _, test := range tests {
		t.Run(test.value, func(t *testing.T) {
			got, err := ParseSignal(test.value)
			if err != nil {
				t.Fatalf("ParseSignal(%q): %v", test.value, err)
			}
			if got != test.want {
				t.Errorf("ParseSignal(%q) = %d, want %d", test.value, got, test.want)
			}
		})
	}
}

func TestParseSignalRejects(t *testing.T) {
	for _, value := range []string{"", "0", "99", "SIGNOPE", "RTMIN+x", "RTMIN+40"} {
		if _, err := ParseSignal(value); err == nil {
			t.Errorf("ParseSignal(%q) succeeded, want error", value)
		}
	}
}

// fakeTarget is a process that records the signals it receives.
type fakeTarget struct {
	pid      int32
	name     string
	nameErr  error
	err      error
	received *[]int32
}

func (f fakeTarget) PID() int32 { return f.pid }

func (f fakeTarget) Name(context.Context) (string, error) { return f.name, f.nameErr }

func (f fakeTarget) Signal(_ context.Context, signal syscall.Signal) error {
	if f.err != nil {
		return f.err
	}
	if f.received != nil {
		*f.received = append(*f.received, f.pid)
	}
	return nil
}

func listing(targets ...Target) func(context.Context) ([]Target, error) {
	return func(context.Context) ([]Target, error) { return targets, nil }
}

func TestSignalByNameMatchesName(t *testing.T) {
	var killed []int32
	signaler := &Signaler{Processes: listing(
		fakeTarget{pid: 100, name: "nwg-panel", received: &killed},
		fakeTarget{pid: 101, name: "bash", received: &killed},
		fakeTarget{pid: 102, name: "nwg-panel", received: &killed},
		fakeTarget{pid: 103, name: "nwg-panel-extra", received: &killed},
		fakeTarget{pid: 104, nameErr: errors.New("gone"), received: &killed},
	)}

	count, err := signaler.SignalByName(context.Background(), "nwg-panel", syscall.Signal(45))
	if err != nil {
		t.Fatalf("SignalByName: %v", err)
	}
	slices.Sort(killed)
	if count != 2 || !slices.Equal(killed, []int32{100, 102}) {
		t.Fatalf("signalled %d pids %v, want [100 102]", count, killed)
	}
}

func TestSignalByNameSkipsSelf(t *testing.T) {
	var killed []int32
	signaler := &Signaler{Processes: listing(
		fakeTarget{pid: int32(os.Getpid()), name: "nwg-pulse", received: &killed},
	)}
	count, err := signaler.SignalByName(context.Background(), "nwg-pulse", syscall.SIGUSR1)
	if count != 0 || err != nil || len(killed) != 0 {
		t.Fatalf("SignalByName = %d, %v (killed %v); want the calling process left alone", count, err, killed)
	}
}

func TestSignalByNameMatchesTruncatedNames(t *testing.T) {
	var killed []int32
	signaler := &Signaler{Processes: listing(
		fakeTarget{pid: 200, name: "visualizer-pulse"[:commLength], received: &killed},
		fakeTarget{pid: 201, name: "visualizer-puls", received: &killed},
	)}

	count, err := signaler.SignalByName(context.Background(), "visualizer-pulse", syscall.SIGUSR1)
	if err != nil || count != 2 {
		t.Fatalf("SignalByName = %d, %v; want 2, nil", count, err)
	}
	count, err = signaler.SignalByName(context.Background(), "visualizer-p", syscall.SIGUSR1)
	if err != nil || count != 0 {
		t.Fatalf("short name matched a longer command: %d, %v", count, err)
	}
}

func TestSignalByNameIgnoresVanishedProcesses(t *testing.T) {
	signaler := &Signaler{Processes: listing(
		fakeTarget{pid: 300, name: "nwg-panel", err: unix.ESRCH},
		fakeTarget{pid: 301, name: "nwg-panel"},
	)}

	count, err := signaler.SignalByName(context.Background(), "nwg-panel", syscall.SIGUSR1)
	if err != nil || count != 1 {
		t.Fatalf("SignalByName = %d, %v; want 1, nil", count, err)
	}
}

func TestSignalByNameReportsPermissionErrors(t *testing.T) {
	signaler := &Signaler{Processes: listing(fakeTarget{pid: 400, name: "nwg-panel", err: unix.EPERM})}

	count, err := signaler.SignalByName(context.Background(), "nwg-panel", syscall.SIGUSR1)
	if count != 0 || !errors.Is(err, unix.EPERM) {
		t.Fatalf("SignalByName = %d, %v; want 0, EPERM", count, err)
	}
}

func TestSignalByNameReportsListingErrors(t *testing.T) {
	cause := errors.New("no procfs")
	signaler := &Signaler{Processes: func(context.Context) ([]Target, error) { return nil, cause }}
	if _, err := signaler.SignalByName(context.Background(), "nwg-panel", syscall.SIGUSR1); !errors.Is(err, cause) {
		t.Fatalf("SignalByName = %v, want %v", err, cause)
	}
}

func TestSignalByNameRejectsEmptyName(t *testing.T) {
	if _, err := (&Signaler{Processes: listing()}).SignalByName(context.Background(), "", syscall.SIGUSR1); err == nil {
		t.Fatal("empty name accepted")
	}
}

func TestSignalByNameSignalsHostProcess(t *testing.T) {
	sleeper := exec.Command("sleep", "30")
	if err := sleeper.Start(); err != nil {
		t.Skipf("sleep unavailable: %v", err)
	}
	t.Cleanup(func() { sleeper.Process.Kill() })

	ctx := context.Background()
	target, err := lookupProcess(ctx, int32(sleeper.Process.Pid))
	if err != nil {
		t.Fatalf("lookupProcess: %v", err)
	}
	signaler := &Signaler{Processes: listing(target)}
	count, err := signaler.SignalByName(ctx, "sleep", syscall.SIGTERM)
	if err != nil || count != 1 {
		t.Fatalf("SignalByName = %d, %v; want 1, nil", count, err)
	}

	err = sleeper.Wait()
	var exit *exec.ExitError
	if !errors.As(err, &exit) {
		t.Fatalf("sleep exited with %v, want a signal", err)
	}
	status, ok := exit.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() || status.Signal() != syscall.SIGTERM {
		t.Fatalf("sleep status = %v, want killed by SIGTERM", exit)
	}
}

func TestHostProcessesIncludesSelf(t *testing.T) {
	targets, err := HostProcesses(context.Background())
	if err != nil {
		t.Fatalf("HostProcesses: %v", err)
	}
	self := int32(os.Getpid())
	if !slices.ContainsFunc(targets, func(target Target) bool { return target.PID() == self }) {
		t.Fatalf("HostProcesses (%d entries) misses pid %d", len(targets), self)
	}
}
