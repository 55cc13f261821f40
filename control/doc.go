// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration and runtime metrics for hioload-vec tools.
//
// Provides:
//   - viper-backed Config with defaults, config file and VECTOOL_* env
//   - MetricsRegistry snapshots, fed from pool allocator statistics
package control
