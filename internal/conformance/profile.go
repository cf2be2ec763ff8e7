package conformance

import (
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/devices"
	"github.com/go-rod/rod/lib/proto"
)

// Profile is one browser configuration the checks run under.
type Profile struct {
	Name   string
	Width  int
	Height int
	Mobile bool // mobile metrics plus touch emulation
}

var (
	Desktop = Profile{Name: "desktop", Width: 1280, Height: 800}
	Mobile  = Profile{Name: "mobile", Width: 375, Height: 667, Mobile: true}
)

// DefaultProfiles returns the profiles run when none are named.
func DefaultProfiles() []Profile {
	return []Profile{Desktop, Mobile}
}

// ProfileByName looks up a built-in profile.
func ProfileByName(name string) (Profile, bool) {
	for _, p := range DefaultProfiles() {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// emulate applies the viewport, and for mobile profiles touch input and
// a phone user agent.
func (p Profile) emulate(page *rod.Page) error {
	if !p.Mobile {
		return page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             p.Width,
			Height:            p.Height,
			DeviceScaleFactor: 1,
		})
	}
	return page.Emulate(devices.Device{
		Title:          p.Name,
		Capabilities:   []string{"touch", "mobile"},
		UserAgent:      devices.IPhone6or7or8.UserAgent,
		AcceptLanguage: "en",
		Screen: devices.Screen{
			DevicePixelRatio: 2,
			Vertical:         devices.ScreenSize{Width: p.Width, Height: p.Height},
			Horizontal:       devices.ScreenSize{Width: p.Height, Height: p.Width},
		},
	})
}
