// Package roam is a scriptable, stateful browser: it executes HTTP
// requests, tracks a bounded back/forward history of visited pages,
// lazily parses response bodies into queryable documents, and follows
// links or submits forms programmatically.
//
// Basic usage:
//
//	b := roam.New(roam.Settings{HistoryDepth: 50})
//	if err := b.Open(ctx, "https://example.com"); err != nil {
//		return err
//	}
//	link, _ := b.Link("More information")
//	if err := b.FollowLink(ctx, link); err != nil {
//		return err
//	}
//	_ = b.Back(1)
//
// Navigation is synchronous and single-owner: every operation, including
// retry backoff waits, completes before returning, and a Browser must not
// be shared across goroutines without external synchronization.
package roam
