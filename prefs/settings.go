package prefs

import (
	"github.com/jellysan-cli/jellysan/filesystem"
	"github.com/jellysan-cli/jellysan/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// settings is the persisted global playback configuration.
type settings struct {
	Video videoSettings `json:"video"`
}

type videoSettings struct {
	// Quality ceiling expressed as a vertical resolution.
	Bitrate mo.Option[int] `json:"bitrate"`
}

// settingsCacher stores the single global settings record with a hard expiry.
var settingsCacher = gache.New[*settings](
	&gache.Options{
		Path:       where.Settings(),
		Lifetime:   TTL,
		FileSystem: &filesystem.GacheFs{},
	},
)

// LoadQualityPreference returns the global quality ceiling, if one is stored
// and still within its expiry window.
func LoadQualityPreference() mo.Option[int] {
	cached, expired, err := settingsCacher.Get()
	if err != nil || expired || cached == nil {
		return mo.None[int]()
	}
	return cached.Video.Bitrate
}

// SaveQualityPreference stores the global quality ceiling. Passing None
// clears the ceiling while keeping the record fresh.
func SaveQualityPreference(ceiling mo.Option[int]) error {
	return settingsCacher.Set(&settings{
		Video: videoSettings{Bitrate: ceiling},
	})
}
