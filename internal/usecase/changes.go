package usecase

import (
	"context"
	"log"

	"jobboard/internal/domain/analytics"
)

const (
	AnalyticsCachePattern = "analytics:*"
	JobsCachePattern      = "jobs:*"
)

type ActivityBroadcaster interface {
	BroadcastActivity(a analytics.Activity)
}

// Change describes a write that other readers must learn about.
type Change struct {
	Activity    *analytics.Activity
	JobsChanged bool
}

type ChangePublisher interface {
	Publish(ctx context.Context, ch Change)
}

// Changes drops cached reads affected by a write and pushes the matching
// activity entry to connected admin dashboards.
type Changes struct {
	cache  Cache
	hub    ActivityBroadcaster
	logger *log.Logger
}

func NewChanges(cache Cache, hub ActivityBroadcaster, logger *log.Logger) *Changes {
	return &Changes{cache: cache, hub: hub, logger: logger}
}

func (c *Changes) Publish(ctx context.Context, ch Change) {
	if c == nil {
		return
	}
	if c.cache != nil {
		patterns := []string{AnalyticsCachePattern}
		if ch.JobsChanged {
			patterns = append(patterns, JobsCachePattern)
		}
		for _, p := range patterns {
			if err := c.cache.DeleteByPattern(ctx, p); err != nil && c.logger != nil {
				c.logger.Printf("[Cache] invalidate failed pattern=%s err=%v", p, err)
			}
		}
	}
	if ch.Activity != nil && c.hub != nil {
		c.hub.BroadcastActivity(*ch.Activity)
	}
}
