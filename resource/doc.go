// Package resource governs the resources used by parallel filter calls.
//
// A Controller caps the number of concurrent parallel calls, accounts the
// bytes of in-flight isolated-worker frames against a memory budget, and
// paces frame dispatch throughput. A nil *Controller imposes no limits.
package resource
