package domain

import "slices"

// YearIndex is the sorted set of distinct years in an observation table.
type YearIndex struct {
	years []int
}

// NewYearIndex computes the distinct years of t in ascending order.
func NewYearIndex(t *Table) YearIndex {
	years := make([]int, 0, 16)
	for _, r := range t.rows {
		years = append(years, r.Year)
	}
	slices.Sort(years)
	return YearIndex{years: slices.Compact(years)}
}

// Years returns a copy of the available years, ascending and without duplicates.
func (y YearIndex) Years() []int {
	return slices.Clone(y.years)
}

// Default returns the year pre-selected in the UI: the minimum available year.
// ok is false when the table is empty.
func (y YearIndex) Default() (year int, ok bool) {
	if len(y.years) == 0 {
		return 0, false
	}
	return y.years[0], true
}

// Contains reports whether year is available.
func (y YearIndex) Contains(year int) bool {
	_, found := slices.BinarySearch(y.years, year)
	return found
}

// Len returns the number of distinct years.
func (y YearIndex) Len() int {
	return len(y.years)
}
