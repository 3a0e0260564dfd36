package models

import "encoding/json"

// Default preference values, used when nothing has been saved yet and for
// fields a stored or submitted document omits.
const (
	DefaultSoundEffects     = true
	DefaultVolume           = 50
	DefaultIncludeRationale = true
	DefaultRegion           = "north-america"

	MinVolume = 0
	MaxVolume = 100
)

// Preferences is the single deployment-wide settings object.
type Preferences struct {
	SoundEffects     bool   `json:"sfx"`
	Volume           int    `json:"volume"`
	IncludeRationale bool   `json:"includeRationale"`
	GeographicRegion string `json:"geographicRegion"`
}

// DefaultPreferences returns the settings in effect before any save.
func DefaultPreferences() *Preferences {
	return &Preferences{
		SoundEffects:     DefaultSoundEffects,
		Volume:           DefaultVolume,
		IncludeRationale: DefaultIncludeRationale,
		GeographicRegion: DefaultRegion,
	}
}

// UnmarshalJSON decodes on top of the defaults, so keys missing from the
// document keep their default values.
func (p *Preferences) UnmarshalJSON(b []byte) error {
	type plain Preferences
	v := plain(*DefaultPreferences())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Preferences(v)
	return nil
}
