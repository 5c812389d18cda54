package component

import "github.com/milk9111/footfall/track"

// Track drives a character controller's velocity from a recorded or scripted
// timeline instead of player input.
type Track struct {
	Source track.Track
	Time   float64
	Loop   bool
	Done   bool
}

var TrackComponent = NewComponent[Track]()
