// Package redis provides the Redis-backed implementation of the
// service.SummaryCache interface.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the progress service's cache port to a Redis server via the
// go-redis client library.
//
// Cached summaries are stored as JSON under a per-user key with a TTL from
// config.CacheConfig. A missing key reads as a cache miss (nil, nil), and a
// corrupt entry is treated the same way so the caller recomputes and
// overwrites it. The cache is strictly an accelerator: every value it holds
// can be rebuilt from the daily log store.
package redis
