package service

import "github.com/momentumhq/contentpilot/internal/models"

// MaxCharRetries is the generation retry budget per slot when the draft
// exceeds the platform character limit.
const MaxCharRetries = 3

// charLimitSafetyMargin keeps generated copy 10% under the provider maximum.
const charLimitSafetyMargin = 0.9

var platformMaxChars = map[string]int{
	models.PlatformInstagram: 2200,
	models.PlatformX:         280,
	models.PlatformLinkedin:  3000,
}

// xPremiumMaxChars is the long-post limit for X accounts on an active
// subscription tier.
const xPremiumMaxChars = 25000

// CharLimitFor returns the enforced character limit for a platform,
// rounded down after the safety margin.
func CharLimitFor(platform string, premiumX bool) int {
	max, ok := platformMaxChars[platform]
	if !ok {
		max = platformMaxChars[models.PlatformInstagram]
	}
	if platform == models.PlatformX && premiumX {
		max = xPremiumMaxChars
	}
	return int(float64(max) * charLimitSafetyMargin)
}
