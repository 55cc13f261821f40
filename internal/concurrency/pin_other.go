//go:build !linux

// File: internal/concurrency/pin_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "runtime"

// Pin marks a goroutine locked by PinCurrentThread.
type Pin struct{}

// PinCurrentThread only locks the goroutine to its OS thread; CPU
// affinity is not set on this platform.
func PinCurrentThread(cpuID int) (*Pin, error) {
	runtime.LockOSThread()
	return &Pin{}, nil
}

// Unpin releases the goroutine from its thread.
func (p *Pin) Unpin() error {
	runtime.UnlockOSThread()
	return nil
}
