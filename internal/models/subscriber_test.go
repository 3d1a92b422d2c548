package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPushToken(t *testing.T) {
	assert.True(t, ValidPushToken("ExponentPushToken[abc123]"))
	assert.True(t, ValidPushToken("ExpoPushToken[xyz_-9]"))
	assert.False(t, ValidPushToken("bad-token"))
	assert.False(t, ValidPushToken("ExponentPushToken[]"))
	assert.False(t, ValidPushToken("ExponentPushToken[abc"))
	assert.False(t, ValidPushToken(""))
}

func TestValidSetNumber(t *testing.T) {
	assert.True(t, ValidSetNumber("75192"))
	assert.True(t, ValidSetNumber("75192-1"))
	assert.True(t, ValidSetNumber("910"))
	assert.False(t, ValidSetNumber("75192-"))
	assert.False(t, ValidSetNumber("abc"))
	assert.False(t, ValidSetNumber("12"))
	assert.False(t, ValidSetNumber(""))
}

func TestValidPlatform(t *testing.T) {
	assert.True(t, ValidPlatform(PlatformIOS))
	assert.True(t, ValidPlatform(PlatformAndroid))
	assert.True(t, ValidPlatform(PlatformWeb))
	assert.False(t, ValidPlatform("windows"))
}

func dealWith(theme, number string) *Deal {
	return &Deal{PriceObservation: PriceObservation{Number: number, Theme: theme}}
}

func TestMatches_NoFiltersMatchesEverything(t *testing.T) {
	sub := &Subscriber{}
	assert.True(t, sub.Matches(dealWith("Star Wars", "75192")))
	assert.True(t, sub.Matches(dealWith("City", "60420")))
}

func TestMatches_ThemeFilter(t *testing.T) {
	sub := &Subscriber{WatchedThemes: []string{"Star Wars"}}
	assert.True(t, sub.Matches(dealWith("Star Wars", "75192")))
	assert.True(t, sub.Matches(dealWith("Star Wars", "99999")))

	// WatchedSets is empty, so the set axis counts as "watching
	// everything" and the subscriber matches other themes too. This is
	// the documented behavior of the OR rule.
	assert.True(t, sub.Matches(dealWith("City", "60420")))
}

func TestMatches_SetFilterMatchesAnyTheme(t *testing.T) {
	// Empty themes means the theme axis matches everything, so a
	// subscriber watching only specific sets still matches every deal.
	sub := &Subscriber{WatchedSets: []string{"75192"}}
	assert.True(t, sub.Matches(dealWith("City", "60420")))
	assert.True(t, sub.Matches(dealWith("Star Wars", "75192")))
}

func TestMatches_BothFiltersSet(t *testing.T) {
	sub := &Subscriber{WatchedThemes: []string{"Technic"}, WatchedSets: []string{"75192"}}
	assert.True(t, sub.Matches(dealWith("Technic", "42115")))
	assert.True(t, sub.Matches(dealWith("Star Wars", "75192")))
	assert.False(t, sub.Matches(dealWith("City", "60420")))
}
