// Package manager owns the single text-generation model handle: its lifecycle
// (unloaded, loading, ready, failed), background and on-demand initialization,
// and the exclusive lock that serializes every use of the handle. It is
// structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: State, Snapshot, Health, ReloadResult.
//   - errors.go: error types and predicates (IsNotReady, IsTooBusy, ...).
//   - initialize.go: Initialize/Start, single-flight loading and handle swap.
//   - admission.go: acquisition of the exclusive model lock.
//   - inference.go: Generate and panic-safe runtime invocation.
//   - template.go: the safety template wrapped around every prompt.
//   - ops.go: Reload.
//   - status_report.go: Snapshot/Health/Status reporting helpers.
//   - sanity.go: startup checks for the runtime and the asset.
//
// Build tags and runtimes:
//
//   - In-process llama: uses the go-llama.cpp adapter. Enabled with `-tags=llama`.
//     File: adapter_llama.go. A no-CGO stub that reports the runtime as
//     unavailable is compiled when the tag is not set: adapter_llama_stub.go.
//
// External packages should use public methods only (New/NewWithConfig, Start,
// Initialize, Reload, Generate, Ready, Health, Status). Internal fields are
// subject to change.
package manager
