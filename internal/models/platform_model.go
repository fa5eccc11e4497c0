package models

const (
	PlatformInstagram = "instagram"
	PlatformX         = "x"
	PlatformLinkedin  = "linkedin"
)

// Platforms is the closed set of supported platforms, in the order the
// autopilot walks them within a day.
var Platforms = []string{PlatformInstagram, PlatformX, PlatformLinkedin}

func IsKnownPlatform(platform string) bool {
	for _, p := range Platforms {
		if p == platform {
			return true
		}
	}
	return false
}
