// Package prefs persists the user's track and quality choices across sessions.
//
// Track preferences are scoped per asset; the quality ceiling is a single
// global setting applied to the next asset selected. Entries expire after
// seven days and corrupt or missing data always reads as absent.
package prefs

import (
	"time"

	"github.com/jellysan-cli/jellysan/filesystem"
	"github.com/jellysan-cli/jellysan/log"
	"github.com/jellysan-cli/jellysan/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// TTL is the preference expiry window.
const TTL = 7 * 24 * time.Hour

// TrackPreference is the persisted per-asset track choice.
type TrackPreference struct {
	Audio    int            `json:"audio"`
	Subtitle mo.Option[int] `json:"subtitle"`
	SavedAt  time.Time      `json:"saved_at"`
}

// trackCacher is the disk-backed registry of per-asset track preferences.
var trackCacher = gache.New[map[string]*TrackPreference](
	&gache.Options{
		Path:       where.TrackPreferences(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// loadTracks returns the full preference registry, treating any read
// failure or whole-file expiry as an empty registry.
func loadTracks() map[string]*TrackPreference {
	cached, expired, err := trackCacher.Get()
	if err != nil || expired || cached == nil {
		return make(map[string]*TrackPreference)
	}
	return cached
}

// LoadTrackPreference returns the stored track choice for an asset.
// Entries older than TTL read as absent.
func LoadTrackPreference(assetID string) mo.Option[TrackPreference] {
	record, ok := loadTracks()[assetID]
	if !ok || record == nil {
		return mo.None[TrackPreference]()
	}

	if time.Since(record.SavedAt) > TTL {
		return mo.None[TrackPreference]()
	}

	return mo.Some(*record)
}

// SaveTrackPreference stores the track choice for an asset, refreshing its
// expiry window.
func SaveTrackPreference(assetID string, audio int, subtitle mo.Option[int]) error {
	saved := loadTracks()

	saved[assetID] = &TrackPreference{
		Audio:    audio,
		Subtitle: subtitle,
		SavedAt:  time.Now(),
	}

	return trackCacher.Set(saved)
}

// CollectGarbage drops expired per-asset entries from the preference store.
// Intended to run in the background at startup.
func CollectGarbage() {
	saved := loadTracks()

	pruned := make(map[string]*TrackPreference, len(saved))
	for assetID, record := range saved {
		if record == nil || time.Since(record.SavedAt) > TTL {
			continue
		}
		pruned[assetID] = record
	}

	if len(pruned) == len(saved) {
		return
	}

	if err := trackCacher.Set(pruned); err != nil {
		log.Warnf("pruning track preferences failed: %v", err)
	}
}
