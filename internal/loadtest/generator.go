package loadtest

import (
	"fmt"
	"math/rand"
)

// Submission is one generated render request.
type Submission struct {
	RequestID   string   `json:"request_id"`
	PlaybackURL string   `json:"playback_url"`
	Platform    string   `json:"platform,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	Transcript  string   `json:"transcript,omitempty"`
}

var samplePlatformSets = [][]string{
	{"instagram"},
	{"instagram", "tiktok"},
	{"instagram", "facebook"},
	{"instagram", "tiktok", "youtube_shorts"},
}

var sampleTranscripts = []string{
	"check out this matte black wrap on the model 3",
	"full color change, satin red, wait for the reveal",
	"before and after on this f150, gloss white to chrome",
	"",
}

// generateSubmissions builds the request set. A configured fraction reuse
// a previously generated request ID to exercise idempotency.
func generateSubmissions(cfg *Config, rng *rand.Rand) []Submission {
	subs := make([]Submission, 0, cfg.NumRequests)
	for i := 0; i < cfg.NumRequests; i++ {
		requestID := fmt.Sprintf("loadtest-%06d", i)
		if i > 0 && rng.Float64() < cfg.DuplicateRate {
			requestID = subs[rng.Intn(len(subs))].RequestID
		}
		subs = append(subs, Submission{
			RequestID:   requestID,
			PlaybackURL: fmt.Sprintf("https://cdn.example.com/loadtest/wrap-%06d.mp4", i),
			Platforms:   samplePlatformSets[rng.Intn(len(samplePlatformSets))],
			Transcript:  sampleTranscripts[rng.Intn(len(sampleTranscripts))],
		})
	}
	return subs
}
