// Package quality defines the resolution tier table used for quality-ceiling
// display and rendition selection.
package quality

// Tier describes one selectable resolution rung with its usable bitrate range.
type Tier struct {
	Name       string
	Resolution string
	// Vertical resolution in pixels; unique key of the table.
	Height     int
	MinBitrate int
	MaxBitrate int
}

// tiers is the canonical ladder, ordered by ascending height.
var tiers = []Tier{
	{Name: "480p", Resolution: "854x480", Height: 480, MinBitrate: 1_000_000, MaxBitrate: 4_000_000},
	{Name: "720p", Resolution: "1280x720", Height: 720, MinBitrate: 2_500_000, MaxBitrate: 7_500_000},
	{Name: "1080p", Resolution: "1920x1080", Height: 1080, MinBitrate: 4_000_000, MaxBitrate: 12_000_000},
	{Name: "1440p", Resolution: "2560x1440", Height: 1440, MinBitrate: 10_000_000, MaxBitrate: 24_000_000},
	{Name: "2160p", Resolution: "3840x2160", Height: 2160, MinBitrate: 25_000_000, MaxBitrate: 60_000_000},
	{Name: "8K", Resolution: "7680x4320", Height: 4320, MinBitrate: 50_000_000, MaxBitrate: 120_000_000},
}

// Tiers returns a copy of the full tier ladder.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Available returns the tiers whose height does not exceed the given ceiling.
func Available(maxHeight int) []Tier {
	var out []Tier
	for _, t := range tiers {
		if t.Height <= maxHeight {
			out = append(out, t)
		}
	}
	return out
}

// TierIndex resolves a vertical resolution to its position in the ladder.
// Height is treated as the unique key; an unknown height yields -1.
func TierIndex(height int) int {
	for i, t := range tiers {
		if t.Height == height {
			return i
		}
	}
	return -1
}

// TierFor returns the tier matching the given height, if any.
func TierFor(height int) (Tier, bool) {
	if i := TierIndex(height); i >= 0 {
		return tiers[i], true
	}
	return Tier{}, false
}
