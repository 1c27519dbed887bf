// Package format classifies and ranks the format descriptors reported by the
// retrieval engine.
//
// Descriptors are partitioned by codec presence into audio-only, video-only,
// and progressive streams, ranked by stable composite quality keys, and the
// best candidates selected with a fixed codec preference ladder. Everything
// here is a pure function over value slices; no I/O happens in this package.
package format
