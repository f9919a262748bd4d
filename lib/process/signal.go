// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	gopsprocess "github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/unix"
)

// commLength is the number of command-name bytes the kernel keeps
// (TASK_COMM_LEN minus the terminator).
const commLength = 15

// rtMin is the first real-time signal as userspace numbers it. glibc
// reserves the two lowest kernel real-time signals for itself.
const rtMin = 34

// ParseSignal accepts a signal number ("45"), a name with or without
// the SIG prefix ("SIGUSR1", "usr1"), or a real-time offset
// ("RTMIN+11", which is 45).
func ParseSignal(value string) (syscall.Signal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("empty signal")
	}
	if number, err := strconv.Atoi(value); err == nil {
		if number <= 0 || number > 64 {
			return 0, fmt.Errorf("signal number %d out of range", number)
		}
		return syscall.Signal(number), nil
	}

	name := strings.ToUpper(value)
	name = strings.TrimPrefix(name, "SIG")
	if offset, found := strings.CutPrefix(name, "RTMIN+"); found {
		number, err := strconv.Atoi(offset)
		if err != nil || number < 0 || rtMin+number > 64 {
			return 0, fmt.Errorf("invalid real-time signal %q", value)
		}
		return syscall.Signal(rtMin + number), nil
	}
	if name == "RTMIN" {
		return syscall.Signal(rtMin), nil
	}
	if signal := unix.SignalNum("SIG" + name); signal != 0 {
		return signal, nil
	}
	return 0, fmt.Errorf("unknown signal %q", value)
}

// Target is one process that may receive a signal.
type Target interface {
	PID() int32
	Name(ctx context.Context) (string, error)
	Signal(ctx context.Context, signal syscall.Signal) error
}

// hostProcess adapts a gopsutil process to [Target].
type hostProcess struct {
	process *gopsprocess.Process
}

func (h hostProcess) PID() int32 { return h.process.Pid }

func (h hostProcess) Name(ctx context.Context) (string, error) {
	return h.process.NameWithContext(ctx)
}

func (h hostProcess) Signal(ctx context.Context, signal syscall.Signal) error {
	return h.process.SendSignalWithContext(ctx, signal)
}

// HostProcesses lists every process visible to the caller.
func HostProcesses(ctx context.Context) ([]Target, error) {
	processes, err := gopsprocess.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}
	targets := make([]Target, len(processes))
	for i, process := range processes {
		targets[i] = hostProcess{process: process}
	}
	return targets, nil
}

// lookupProcess adapts one host process by pid.
func lookupProcess(ctx context.Context, pid int32) (Target, error) {
	process, err := gopsprocess.NewProcessWithContext(ctx, pid)
	if err != nil {
		return nil, err
	}
	return hostProcess{process: process}, nil
}

// Signaler delivers signals to processes by command name.
type Signaler struct {
	// Processes enumerates the candidates. Nil means HostProcesses.
	Processes func(ctx context.Context) ([]Target, error)
}

// SignalByName sends signal to every process whose command name is
// name, except the calling process. It returns how many processes were
// signalled. Processes that exit between the listing and the signal are
// not errors; permission failures are collected and returned together.
func (s *Signaler) SignalByName(ctx context.Context, name string, signal syscall.Signal) (int, error) {
	if name == "" {
		return 0, errors.New("empty process name")
	}
	list := s.Processes
	if list == nil {
		list = HostProcesses
	}
	targets, err := list(ctx)
	if err != nil {
		return 0, err
	}

	self := int32(os.Getpid())
	signalled := 0
	var failures []error
	for _, target := range targets {
		if target.PID() == self {
			continue
		}
		command, err := target.Name(ctx)
		if err != nil || !sameCommand(command, name) {
			continue
		}
		if err := target.Signal(ctx, signal); err != nil {
			if errors.Is(err, unix.ESRCH) || errors.Is(err, gopsprocess.ErrorProcessNotRunning) {
				continue
			}
			failures = append(failures, fmt.Errorf("signalling pid %d: %w", target.PID(), err))
			continue
		}
		signalled++
	}
	return signalled, errors.Join(failures...)
}

// sameCommand matches a process name against the wanted one. The kernel
// may report only the first commLength bytes of a longer name.
func sameCommand(command, want string) bool {
	if command == want {
		return true
	}
	return len(command) == commLength && len(want) > commLength && want[:commLength] == command
}
