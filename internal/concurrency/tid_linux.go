//go:build linux

// File: internal/concurrency/tid_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux thread identity via gettid(2).

package concurrency

import "golang.org/x/sys/unix"

// ThreadID returns the kernel thread id of the calling goroutine's
// current OS thread. Used as a locality hint for shard selection;
// goroutines may migrate between threads at any point.
func ThreadID() int { return unix.Gettid() }
