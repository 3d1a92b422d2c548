package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brickdeals/internal/models"
	"brickdeals/internal/structures"
	"brickdeals/internal/testutil"
)

type mockClient struct {
	pages map[int]*Page
	err   map[int]error
	calls []int
}

func (m *mockClient) FetchPage(_ context.Context, page, _, _ int) (*Page, error) {
	m.calls = append(m.calls, page)
	if err := m.err[page]; err != nil {
		return nil, err
	}
	if p, ok := m.pages[page]; ok {
		return p, nil
	}
	return &Page{}, nil
}

func ingestConfig() *structures.Config {
	return &structures.Config{
		Catalog: structures.CatalogConfig{
			MinPieces:    100,
			PricePerUnit: 0.10,
			MinPrice:     9.99,
		},
	}
}

func record(number string, pieces int) SetRecord {
	return SetRecord{
		Number:   number,
		Name:     "Set " + number,
		ThemeID:  5,
		Pieces:   pieces,
		Year:     2024,
		ImageURL: "https://img.example/" + number + ".png",
	}
}

func newTestIngestor(client ClientInterface) IngestorInterface {
	return NewIngestor(ingestConfig(), client, NewDefaultThemeTable(), &testutil.MockLogger{})
}

func TestIngest_NormalizesRecords(t *testing.T) {
	client := &mockClient{pages: map[int]*Page{
		1: {Results: []SetRecord{record("75192", 7541)}},
	}}

	products := newTestIngestor(client).Ingest(context.Background(), 2023, 2025, 10)

	require.Len(t, products, 1)
	p := products[0]
	assert.Equal(t, "75192", p.Number)
	assert.Equal(t, "Star Wars", p.Theme)
	assert.Equal(t, 754.10, p.RetailPrice)
	assert.Equal(t, models.AvailabilityAvailable, p.Availability)
}

func TestIngest_FiltersUnusableRecords(t *testing.T) {
	noNumber := record("", 500)
	noImage := record("11111", 500)
	noImage.ImageURL = ""
	tooSmall := record("22222", 99)
	// Merch markers in the name only matter below the piece gate.
	merch := record("33333", 500)
	merch.Name = "Darth Vader Key Chain"

	client := &mockClient{pages: map[int]*Page{
		1: {Results: []SetRecord{noNumber, noImage, tooSmall, merch, record("44444", 200)}},
	}}

	products := newTestIngestor(client).Ingest(context.Background(), 2023, 2025, 10)

	require.Len(t, products, 2)
	assert.Equal(t, "33333", products[0].Number)
	assert.Equal(t, "44444", products[1].Number)
}

func TestIngest_DropsLowPieceMerch(t *testing.T) {
	cfg := ingestConfig()
	cfg.Catalog.MinPieces = 1
	keychain := record("55555", 3)
	keychain.Name = "Yoda Keychain"

	client := &mockClient{pages: map[int]*Page{
		1: {Results: []SetRecord{keychain}},
	}}
	ing := NewIngestor(cfg, client, NewDefaultThemeTable(), &testutil.MockLogger{})

	assert.Empty(t, ing.Ingest(context.Background(), 2023, 2025, 10))
}

func TestIngest_PriceFloor(t *testing.T) {
	client := &mockClient{pages: map[int]*Page{
		1: {Results: []SetRecord{record("66666", 100)}},
	}}
	cfg := ingestConfig()
	cfg.Catalog.PricePerUnit = 0.01
	ing := NewIngestor(cfg, client, NewDefaultThemeTable(), &testutil.MockLogger{})

	products := ing.Ingest(context.Background(), 2023, 2025, 10)

	require.Len(t, products, 1)
	assert.Equal(t, 9.99, products[0].RetailPrice)
}

func TestIngest_StopsWhenNoNextPage(t *testing.T) {
	client := &mockClient{pages: map[int]*Page{
		1: {Results: []SetRecord{record("10001", 200)}, HasNext: true},
		2: {Results: []SetRecord{record("10002", 200)}, HasNext: false},
		3: {Results: []SetRecord{record("10003", 200)}},
	}}

	products := newTestIngestor(client).Ingest(context.Background(), 2023, 2025, 10)

	assert.Len(t, products, 2)
	assert.Equal(t, []int{1, 2}, client.calls)
}

func TestIngest_StopsAtEmptyPage(t *testing.T) {
	client := &mockClient{pages: map[int]*Page{
		1: {Results: []SetRecord{record("10001", 200)}, HasNext: true},
		2: {},
	}}

	products := newTestIngestor(client).Ingest(context.Background(), 2023, 2025, 10)

	assert.Len(t, products, 1)
	assert.Equal(t, []int{1, 2}, client.calls)
}

func TestIngest_HonorsPageLimit(t *testing.T) {
	client := &mockClient{pages: map[int]*Page{
		1: {Results: []SetRecord{record("10001", 200)}, HasNext: true},
		2: {Results: []SetRecord{record("10002", 200)}, HasNext: true},
		3: {Results: []SetRecord{record("10003", 200)}, HasNext: true},
	}}

	products := newTestIngestor(client).Ingest(context.Background(), 2023, 2025, 2)

	assert.Len(t, products, 2)
	assert.Equal(t, []int{1, 2}, client.calls)
}

func TestIngest_PartialResultOnFetchError(t *testing.T) {
	client := &mockClient{
		pages: map[int]*Page{
			1: {Results: []SetRecord{record("10001", 200)}, HasNext: true},
		},
		err: map[int]error{2: errors.New("boom")},
	}
	logger := &testutil.MockLogger{}
	ing := NewIngestor(ingestConfig(), client, NewDefaultThemeTable(), logger)

	products := ing.Ingest(context.Background(), 2023, 2025, 10)

	assert.Len(t, products, 1)
	assert.Equal(t, 1, logger.CountLevel("error"))
}

func TestNormalizeAvailability(t *testing.T) {
	assert.Equal(t, models.AvailabilitySoldOut, normalizeAvailability(" Sold_Out "))
	assert.Equal(t, models.AvailabilityRetiringSoon, normalizeAvailability("retiring_soon"))
	assert.Equal(t, models.AvailabilityAvailable, normalizeAvailability("whatever"))
	assert.Equal(t, models.AvailabilityAvailable, normalizeAvailability(""))
}
