package models

import (
	"regexp"
	"time"
)

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
)

// Subscriber is one registered push endpoint with its matching preferences.
// Keyed by Token; owned exclusively by the registry, the notifier only reads it.
type Subscriber struct {
	Token         string    `json:"token"`
	Platform      Platform  `json:"platform"`
	Enabled       bool      `json:"enabled"`
	MinDiscount   int       `json:"min_discount"`
	WatchedThemes []string  `json:"watched_themes"`
	WatchedSets   []string  `json:"watched_sets"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var (
	pushTokenRe = regexp.MustCompile(`^Expo(nent)?PushToken\[[A-Za-z0-9_-]+\]$`)
	setNumberRe = regexp.MustCompile(`^\d{3,7}(-\d{1,2})?$`)
)

// ValidPushToken reports whether s has the push gateway's token syntax.
func ValidPushToken(s string) bool {
	return pushTokenRe.MatchString(s)
}

// ValidSetNumber reports whether s looks like a set number ("75192" or "75192-1").
func ValidSetNumber(s string) bool {
	return setNumberRe.MatchString(s)
}

func ValidPlatform(p Platform) bool {
	switch p {
	case PlatformIOS, PlatformAndroid, PlatformWeb:
		return true
	}
	return false
}

// Matches implements the subscriber/deal match rule: a subscriber is eligible
// when they watch the deal's theme or they watch the deal's set, where an
// empty list on either axis counts as watching everything on that axis.
func (s *Subscriber) Matches(deal *Deal) bool {
	watchingTheme := len(s.WatchedThemes) == 0
	for _, t := range s.WatchedThemes {
		if t == deal.Theme {
			watchingTheme = true
			break
		}
	}
	watchingSet := len(s.WatchedSets) == 0
	for _, n := range s.WatchedSets {
		if n == deal.Number {
			watchingSet = true
			break
		}
	}
	return watchingTheme || watchingSet
}
