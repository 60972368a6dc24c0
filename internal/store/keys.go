package store

import "sync"

// keyPool recycles the byte slices used to build Badger keys. Every
// engagement, feed, and entry operation builds at least one key, so
// the pool keeps that path allocation-free.
var keyPool = sync.Pool{
	New: func() any {
		// 256 bytes covers every key this store builds: collection
		// prefix, optional "idx:<name>:", and a slug or nanoid suffix.
		return make([]byte, 0, 256)
	},
}

// buildKey constructs a database key from prefix and suffix using a
// pooled buffer. The slice is valid until releaseKey is called, and
// callers MUST call releaseKey when done.
//
// Usage:
//
//	key := buildKey("book:", slug)
//	defer releaseKey(key)
//	item, err := txn.Get(key)
func buildKey(prefix, suffix string) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0]
	buf = append(buf, prefix...)
	buf = append(buf, suffix...)
	return buf
}

// buildIndexKey constructs a secondary-index key from prefix, index
// name, and value. Same pooling contract as buildKey.
//
// Usage:
//
//	key := buildIndexKey("book:", "isbn", isbn)
//	defer releaseKey(key)
//	item, err := txn.Get(key)
func buildIndexKey(prefix, indexName, value string) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0]
	buf = append(buf, prefix...)
	buf = append(buf, "idx:"...)
	buf = append(buf, indexName...)
	buf = append(buf, ':')
	buf = append(buf, value...)
	return buf
}

// releaseKey returns a key buffer to the pool for reuse. The slice
// must not be touched afterwards. Oversized buffers (a long title in
// an index value, say) are dropped instead of pooled.
func releaseKey(key []byte) {
	if cap(key) <= 512 {
		keyPool.Put(key[:0])
	}
}
