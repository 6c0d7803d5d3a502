// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// These benchmarks cover the hot paths of a jython-cli run:
//   - jbang block extraction from script text
//   - TOML parsing and configuration resolution
//   - CUE config file validation
//   - JBang command and shim assembly
//   - the end-to-end launch pipeline with a no-op launcher
//
// To generate a profile, run:
//
//	go test -run '^$' -bench . -cpuprofile default.pgo ./internal/benchmark
package benchmark
