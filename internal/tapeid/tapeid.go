// Package tapeid gives a tape loader a cheap way to recognise a tape
// image it has already parsed, so it can skip re-running
// format.ParseTAP/ParseTZX over unchanged bytes. No package of the
// core imports it; it is grounded on the teacher's
// frame-cache pattern in pkg/display/web (xxhash.Sum64 as a dedup key)
// adapted from framebuffers to whole tape images.
package tapeid

import "github.com/cespare/xxhash"

// ID is the content hash of a raw tape image, suitable as a map key.
type ID uint64

// Of hashes raw tape bytes (a .tap or .tzx image, before parsing).
func Of(raw []byte) ID {
	return ID(xxhash.Sum64(raw))
}

// Cache remembers the parsed-block result keyed by tape content hash,
// so loading the same image twice (a restart, a re-inserted cassette)
// skips tape/format parsing the second time.
type Cache[T any] struct {
	entries map[ID]T
}

// NewCache returns an empty Cache.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{entries: make(map[ID]T)}
}

// Get returns the cached value for raw's content hash, if present.
func (c *Cache[T]) Get(raw []byte) (T, bool) {
	v, ok := c.entries[Of(raw)]
	return v, ok
}

// Put stores value under raw's content hash.
func (c *Cache[T]) Put(raw []byte, value T) {
	c.entries[Of(raw)] = value
}
