// Package parallel evaluates filters over contiguous chunks of ordinals on a
// call-scoped worker pool and reassembles the mask in chunk order.
//
// # Modes
//
//   - ModeThread: goroutines read the shared columns directly. Lowest
//     dispatch overhead.
//   - ModeIsolated: every chunk is serialized into a self-contained frame
//     (bounds plus column slices, optionally LZ4 or Zstd compressed). Workers
//     decode the frame into private memory and answer with an encoded result
//     frame, so only bytes cross the worker boundary.
//
// # Chunking
//
// For n ordinals and w workers the chunk size is ceil(n/w). Exactly w chunks
// are produced; trailing chunks may be empty when w > n.
//
// Any worker failure fails the whole call and no partial mask is returned.
package parallel
