// SPDX-License-Identifier: MPL-2.0

// Package merge implements the board merge pipeline.
//
// A run is a strictly sequential fold with three stages:
//   - Discover: recursively list *.json files under the merge root
//   - Extract: read and parse one file, yielding its board records or a skip reason
//   - Aggregate: validate, stably sort by (vendor, name) and summarize the collection
//
// Per-file failures (unreadable or malformed files) are absorbed as
// Diagnostics and never stop a run. An invalid root, a record without a
// vendor or name, and a failed write are fatal and abort the run before any
// output exists.
//
// File organization:
//   - errors.go: error kinds and typed errors
//   - diagnostic.go: non-fatal per-file diagnostics
//   - discover.go, extract.go, aggregate.go: the three stages
//   - events.go: lifecycle events for presentation layers
//   - run.go: the orchestrator (Run)
package merge
