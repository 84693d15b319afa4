// Package cache provides the in-process TTL caches for generation
// responses and image-search results. Both caches are safe for concurrent
// use with atomic put/get semantics: an entry is either fully present or
// absent. Concurrent identical requests are deliberately not deduplicated;
// two misses for the same fingerprint may both generate, and the last
// write wins.
package cache
