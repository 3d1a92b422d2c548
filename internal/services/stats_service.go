package services

import (
	"context"

	"brickdeals/internal/store"
)

// StatsServiceInterface exposes the store counts consumed by the health
// endpoint and the metrics gauges.
type StatsServiceInterface interface {
	CatalogSize() int
	DealCount() int
	SubscriberCount() int
}

type StatsService struct {
	catalog     store.CatalogStoreInterface
	deals       store.DealStoreInterface
	subscribers store.SubscriberStoreInterface
}

func NewStatsService(catalog store.CatalogStoreInterface, deals store.DealStoreInterface, subscribers store.SubscriberStoreInterface) StatsServiceInterface {
	return &StatsService{catalog: catalog, deals: deals, subscribers: subscribers}
}

func (s *StatsService) CatalogSize() int {
	n, err := s.catalog.Count(context.Background())
	if err != nil {
		return -1
	}
	return n
}

func (s *StatsService) DealCount() int {
	n, err := s.deals.Count(context.Background())
	if err != nil {
		return -1
	}
	return n
}

func (s *StatsService) SubscriberCount() int {
	n, err := s.subscribers.Count(context.Background())
	if err != nil {
		return -1
	}
	return n
}
