// Package domain models yearly climate observations per municipality and the
// year filter that turns them into map-ready frames.
//
// # Data Source
//
// Observations come from a spreadsheet maintained by hand, one row per
// municipality and year. Boundaries come from a GeoJSON FeatureCollection whose
// features carry the municipality name in their properties. The two sources are
// joined on that name.
//
// # Column Conventions
//
// Source headers are Spanish and upper case:
//
//	MUNICIPIO        municipality name (join key, configurable)
//	AÑO              observation year (configurable)
//	TEMPERATURA      mean temperature, °C
//	TEMP_MIN         minimum temperature, °C
//	TEMP_MAX         maximum temperature, °C
//	PRECIPITACIONES  precipitation, mm
//
// Any measurement column may be missing from the sheet, and any cell may be
// blank. Both cases yield a nil measurement, shown as "N/D" in hover text.
//
// # Join Semantics
//
// Names must match the boundary property byte for byte. "Cochabamba" and
// "COCHABAMBA" are different regions, as are "POTOSI" and "POTOSÍ". Unmatched
// rows are not errors; they simply do not render. [MatchRegions] reports the
// mismatches and suggests likely spellings without changing the join.
//
// # Color Scales
//
// The mapped variable is fixed per process. Variables whose name contains
// "temp" (any case) use the diverging RdYlBu_r palette; everything else uses
// the sequential YlGnBu palette. See [ColorScaleFor].
package domain
