// Package marathonguide scrapes race results from the MarathonGuide
// index. Races for a year are discovered by crawling browse pages, each
// race's results are snapshotted batch by batch, and stored batches are
// extracted into raw rows keyed by the site's MIDD race id.
package marathonguide
