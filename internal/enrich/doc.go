// Package enrich turns cleaned race results into modeling rows: the split
// and identity columns the estimators consume plus derived features such
// as elite and qualifier status, home region, interpolated splits, and the
// race's weather.
package enrich
