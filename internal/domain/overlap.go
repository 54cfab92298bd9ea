package domain

import "time"

// OverlapType describes how a candidate trip's dates sit relative to an
// existing trip. It only drives the message shown to the user; any finding
// makes the candidate invalid.
type OverlapType string

const (
	OverlapExactMatch    OverlapType = "exact_match"
	OverlapContains      OverlapType = "contains"
	OverlapContainedBy   OverlapType = "contained_by"
	OverlapOverlapsStart OverlapType = "overlaps_start"
	OverlapOverlapsEnd   OverlapType = "overlaps_end"
)

// OverlapFinding is one existing trip that shares a calendar day with the candidate.
type OverlapFinding struct {
	ConflictingTripID int64
	CountryCode       string
	StartDate         time.Time
	EndDate           time.Time
	OverlapType       OverlapType
	IsSameDates       bool
	IsSameCountry     bool
}

// OverlapResult is the outcome of checking a candidate trip against a user's
// other trips. Conflicts is never nil.
type OverlapResult struct {
	IsValid   bool
	Conflicts []OverlapFinding
	Message   string
}
