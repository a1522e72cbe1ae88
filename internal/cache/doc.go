// Package cache provides the small LRU cache used for sized font faces.
//
//	c := cache.New[int32, font.Face](8)
//	c.OnEvict(func(_ int32, f font.Face) { f.Close() })
//	face, err := c.GetOrCreate(size, newFace)
//
// Cache is safe for concurrent use.
package cache
