package telemetry

import (
	"sync"
	"testing"
)

func TestTrackScan(t *testing.T) {
	c := NewClient()
	c.TrackScan(true)
	c.TrackScan(false)
	c.TrackScan(true)

	s := c.Snapshot()
	if s.Scans != 3 || s.Flagged != 2 {
		t.Errorf("snapshot = %+v, want 3 scans 2 flagged", s)
	}
}

func TestTrackCacheAndErrors(t *testing.T) {
	c := NewClient()
	c.TrackCache(true)
	c.TrackCache(false)
	c.TrackCache(false)
	c.TrackError()

	s := c.Snapshot()
	if s.CacheHits != 1 || s.CacheMisses != 2 || s.Errors != 1 {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	c.TrackScan(true)
	c.TrackCache(false)
	c.TrackError()
	if s := c.Snapshot(); s.Scans != 0 {
		t.Errorf("nil client snapshot = %+v", s)
	}
}

func TestConcurrentTracking(t *testing.T) {
	c := NewClient()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.TrackScan(j%2 == 0)
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	if s.Scans != 1600 || s.Flagged != 800 {
		t.Errorf("snapshot = %+v, want 1600 scans 800 flagged", s)
	}
}
