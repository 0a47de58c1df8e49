// Package metrics exposes Prometheus collectors for provider calls and reconcile runs.
//
// The collectors live on a private registry served by Handler, which the start
// command mounts at /metrics through fiber's adaptor.
package metrics
