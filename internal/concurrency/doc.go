// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concurrency primitives shared by hioload-vec packages: the bounded MPMC
// queue backing pool free lists, and OS thread pinning for ring
// producers and consumers.
package concurrency
