// Package scrape provides the polite HTTP client shared by the site
// scrapers.
//
// A Client sends every request with one User-Agent, keeps a minimum delay
// between consecutive requests, and retries transport errors and 5xx/429
// responses with capped exponential backoff. Form and query requests are
// built from url-tagged parameter structs so each site client declares its
// request surface as plain types.
package scrape
