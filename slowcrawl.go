// Package slowcrawl provides a polite, resumable web crawler.
// It keeps a durable FIFO frontier of URLs, a durable ledger of seen URLs
// and document fingerprints, and a pull-driven loop that fetches pages,
// follows their links under robots.txt policy, and yields the fetched
// documents one at a time.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, robotstxt/, goquery/).
package slowcrawl
