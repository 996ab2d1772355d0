package tui

import "time"

// availabilityMsg is sent when the composite's availability or membership
// may have changed outside of Update.
type availabilityMsg struct{}

// childRanMsg is sent when a demo child finishes its work
type childRanMsg struct {
	name string
}

// runFinishedMsg is sent when an execution run of the composite returns
type runFinishedMsg struct {
	run     int
	err     error
	elapsed time.Duration
}
