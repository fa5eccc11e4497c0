package service

import (
	"testing"

	"github.com/momentumhq/contentpilot/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCharLimitFor(t *testing.T) {
	assert.Equal(t, 1980, CharLimitFor(models.PlatformInstagram, false))
	assert.Equal(t, 252, CharLimitFor(models.PlatformX, false))
	assert.Equal(t, 2700, CharLimitFor(models.PlatformLinkedin, false))
}

func TestCharLimitForPremiumX(t *testing.T) {
	assert.Equal(t, 22500, CharLimitFor(models.PlatformX, true))

	// Premium only changes X.
	assert.Equal(t, 1980, CharLimitFor(models.PlatformInstagram, true))
	assert.Equal(t, 2700, CharLimitFor(models.PlatformLinkedin, true))
}

func TestCharLimitForUnknownPlatform(t *testing.T) {
	assert.Equal(t, 1980, CharLimitFor("threads", false))
}
