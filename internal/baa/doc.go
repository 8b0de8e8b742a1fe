// Package baa scrapes and parses Boston Marathon results from the BAA
// registration site.
//
// The site serves results 25 rows at a time through a last-name search
// capped at 1000 rows per query. The scraper walks every two-letter
// last-name prefix, snapshots each page, and re-queries a capped prefix
// subdivided by gender. Two page layouts exist: the per-year search used
// from 2010 on and the archive search covering 2001-2009.
package baa
