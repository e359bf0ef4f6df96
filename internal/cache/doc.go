// Package cache memoizes generated vertex buffers.
//
// Primitives whose geometry depends only on literal properties produce the
// same vertices on every call. Sharded keeps those buffers keyed by a
// signature of the resolved properties, so repeated shapes (and every
// generation of a static scene exported frame after frame) share one
// computation.
//
//	c := cache.NewSharded[string, []float32](64, cache.StringHasher)
//	buf := c.GetOrCreate(sig, func() []float32 { return compute() })
//
// # Thread Safety
//
// Sharded is safe for concurrent use: the sequence command renders frames
// in parallel and the primitives share a package-level cache.
// It must not be copied after creation.
package cache
