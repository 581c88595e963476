package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix      = "post:%s"
	PostsListPrefix    = "posts:%s"
	CategoriesKey      = "taxonomy:categories"
	TagsKey            = "taxonomy:tags"
	GlobalStatsKey     = "stats:global"
	AboutPageKey       = "page:about"
	ContactPageKey     = "page:contact"
)

const (
	PostTTL     = 10 * time.Minute
	ListTTL     = 2 * time.Minute
	TaxonomyTTL = 10 * time.Minute
	StatsTTL    = 5 * time.Minute
	PageTTL     = 30 * time.Minute
)

func PostKey(slug string) string {
	return fmt.Sprintf(PostKeyPrefix, slug)
}

// PostsListKey keys a published-post listing by its normalized query string.
func PostsListKey(query string) string {
	return fmt.Sprintf(PostsListPrefix, query)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client == nil {
		return
	}
	for _, key := range keys {
		client.Del(ctx, key)
	}
}

// InvalidatePost drops the cached detail for a single post.
func InvalidatePost(ctx context.Context, slug string) {
	Invalidate(ctx, PostKey(slug))
}

// InvalidatePostLists drops every cached listing. Listings are keyed by
// query string so a scan is required.
func InvalidatePostLists(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, fmt.Sprintf(PostsListPrefix, "*"), 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

// InvalidateTaxonomy drops the cached category and tag listings.
func InvalidateTaxonomy(ctx context.Context) {
	Invalidate(ctx, CategoriesKey, TagsKey)
}

// InvalidateStats drops the cached public stats snapshot.
func InvalidateStats(ctx context.Context) {
	Invalidate(ctx, GlobalStatsKey)
}
