package intel

import "errors"

// Sentinel errors for the video intelligence engine.
var (
	// ErrMissingPlaybackURL signals caller misuse; it is the only hard
	// error the engine returns. Collaborator failures degrade instead.
	ErrMissingPlaybackURL = errors.New("playback url is required")
)
