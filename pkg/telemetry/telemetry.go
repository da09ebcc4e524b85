// Package telemetry tracks in-process gateway counters. Counters are plain
// atomics so the hot classification path never takes a lock.
package telemetry

import (
	"sync/atomic"
	"time"
)

// Stats is a point-in-time snapshot of the gateway counters.
type Stats struct {
	Scans         uint64  `json:"scans"`
	Flagged       uint64  `json:"flagged"`
	CacheHits     uint64  `json:"cache_hits"`
	CacheMisses   uint64  `json:"cache_misses"`
	Errors        uint64  `json:"errors"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Client accumulates counters for one gateway process.
type Client struct {
	scans       atomic.Uint64
	flagged     atomic.Uint64
	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64
	errors      atomic.Uint64
	started     time.Time
}

// GlobalClient is the process-wide default used by the gateway handlers.
var GlobalClient = NewClient()

// NewClient returns a Client with the uptime clock started.
func NewClient() *Client {
	return &Client{started: time.Now()}
}

// TrackScan records one classification and whether it flagged.
func (c *Client) TrackScan(flagged bool) {
	if c == nil {
		return
	}
	c.scans.Add(1)
	if flagged {
		c.flagged.Add(1)
	}
}

// TrackCache records a cache lookup outcome.
func (c *Client) TrackCache(hit bool) {
	if c == nil {
		return
	}
	if hit {
		c.cacheHits.Add(1)
	} else {
		c.cacheMisses.Add(1)
	}
}

// TrackError records a handler or storage failure.
func (c *Client) TrackError() {
	if c == nil {
		return
	}
	c.errors.Add(1)
}

// Snapshot returns the current counter values.
func (c *Client) Snapshot() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{
		Scans:         c.scans.Load(),
		Flagged:       c.flagged.Load(),
		CacheHits:     c.cacheHits.Load(),
		CacheMisses:   c.cacheMisses.Load(),
		Errors:        c.errors.Load(),
		UptimeSeconds: time.Since(c.started).Seconds(),
	}
}
