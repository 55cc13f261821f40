//go:build linux

// File: internal/concurrency/pin_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux thread pinning through sched_setaffinity. CPUs are picked from
// the mask the thread already had, so restricted cpusets are honoured.

package concurrency

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Pin holds the affinity a thread had before PinCurrentThread.
type Pin struct {
	orig unix.CPUSet
}

// PinCurrentThread locks the calling goroutine to its OS thread and binds
// that thread to the n-th CPU of its current mask, n being cpuID modulo
// the number of allowed CPUs. Unpin must run on the same goroutine.
func PinCurrentThread(cpuID int) (*Pin, error) {
	runtime.LockOSThread()
	p := &Pin{}
	if err := unix.SchedGetaffinity(0, &p.orig); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("pin: sched_getaffinity: %w", err)
	}
	cpu := nthCPU(&p.orig, cpuID)
	if cpu < 0 {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("pin: empty affinity mask")
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("pin: sched_setaffinity cpu %d: %w", cpu, err)
	}
	return p, nil
}

// Unpin restores the saved mask and releases the goroutine from its thread.
func (p *Pin) Unpin() error {
	defer runtime.UnlockOSThread()
	return unix.SchedSetaffinity(0, &p.orig)
}

// nthCPU returns the CPU number of the (n mod Count)-th set bit, or -1.
func nthCPU(set *unix.CPUSet, n int) int {
	count := set.Count()
	if count == 0 {
		return -1
	}
	n %= count
	if n < 0 {
		n += count
	}
	bits := len(set) * int(unsafe.Sizeof(set[0])) * 8
	for cpu := 0; cpu < bits; cpu++ {
		if !set.IsSet(cpu) {
			continue
		}
		if n == 0 {
			return cpu
		}
		n--
	}
	return -1
}
