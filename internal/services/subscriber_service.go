package services

import (
	"context"
	"fmt"
	"time"

	"brickdeals/internal/models"
	"brickdeals/internal/store"
	"brickdeals/internal/structures"
)

// Preferences carries the optional fields of a registration or a partial
// preference update. Nil pointers mean "leave unchanged".
type Preferences struct {
	Enabled       *bool    `json:"enabled"`
	MinDiscount   *int     `json:"min_discount"`
	WatchedThemes []string `json:"watched_themes"`
	WatchedSets   []string `json:"watched_sets"`
}

type SubscriberServiceInterface interface {
	Register(ctx context.Context, token string, platform models.Platform, prefs *Preferences) error
	UpdatePreferences(ctx context.Context, token string, prefs *Preferences) error
	Unregister(ctx context.Context, token string) error
	Get(ctx context.Context, token string) (*models.Subscriber, error)
}

type SubscriberService struct {
	subscribers store.SubscriberStoreInterface
	maxThemes   int
	maxSets     int
}

func NewSubscriberService(conf *structures.Config, subscribers store.SubscriberStoreInterface) SubscriberServiceInterface {
	return &SubscriberService{
		subscribers: subscribers,
		maxThemes:   conf.Deals.MaxWatchThemes,
		maxSets:     conf.Deals.MaxWatchSets,
	}
}

// Register upserts by token, so re-registration is idempotent.
func (ss *SubscriberService) Register(ctx context.Context, token string, platform models.Platform, prefs *Preferences) error {
	if !models.ValidPushToken(token) {
		return ErrInvalidToken
	}
	if !models.ValidPlatform(platform) {
		return ErrInvalidPlatform
	}

	sub := &models.Subscriber{
		Token:         token,
		Platform:      platform,
		Enabled:       true,
		MinDiscount:   40,
		WatchedThemes: []string{},
		WatchedSets:   []string{},
	}
	ss.apply(sub, prefs)
	sub.UpdatedAt = time.Now()

	if err := ss.subscribers.Upsert(ctx, sub); err != nil {
		return fmt.Errorf("register subscriber: %w", err)
	}
	return nil
}

// UpdatePreferences applies only the supplied fields and 404s on unknown tokens.
func (ss *SubscriberService) UpdatePreferences(ctx context.Context, token string, prefs *Preferences) error {
	if !models.ValidPushToken(token) {
		return ErrInvalidToken
	}
	sub, err := ss.subscribers.Get(ctx, token)
	if err != nil {
		return fmt.Errorf("load subscriber: %w", err)
	}
	if sub == nil {
		return ErrNotFound
	}

	ss.apply(sub, prefs)
	sub.UpdatedAt = time.Now()

	if err := ss.subscribers.Upsert(ctx, sub); err != nil {
		return fmt.Errorf("update subscriber: %w", err)
	}
	return nil
}

// Unregister deletes by token; deleting an absent token is not an error.
func (ss *SubscriberService) Unregister(ctx context.Context, token string) error {
	if !models.ValidPushToken(token) {
		return ErrInvalidToken
	}
	return ss.subscribers.Delete(ctx, token)
}

func (ss *SubscriberService) Get(ctx context.Context, token string) (*models.Subscriber, error) {
	if !models.ValidPushToken(token) {
		return nil, ErrInvalidToken
	}
	sub, err := ss.subscribers.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	return sub, nil
}

// apply folds a partial preference set into a subscriber, clamping the
// threshold to [0,100], truncating the watch lists to their bounds and
// silently dropping malformed set numbers.
func (ss *SubscriberService) apply(sub *models.Subscriber, prefs *Preferences) {
	if prefs == nil {
		return
	}
	if prefs.Enabled != nil {
		sub.Enabled = *prefs.Enabled
	}
	if prefs.MinDiscount != nil {
		sub.MinDiscount = clamp(*prefs.MinDiscount, 0, 100)
	}
	if prefs.WatchedThemes != nil {
		themes := prefs.WatchedThemes
		if len(themes) > ss.maxThemes {
			themes = themes[:ss.maxThemes]
		}
		sub.WatchedThemes = append([]string{}, themes...)
	}
	if prefs.WatchedSets != nil {
		sets := make([]string, 0, len(prefs.WatchedSets))
		for _, n := range prefs.WatchedSets {
			if models.ValidSetNumber(n) {
				sets = append(sets, n)
			}
		}
		if len(sets) > ss.maxSets {
			sets = sets[:ss.maxSets]
		}
		sub.WatchedSets = sets
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
