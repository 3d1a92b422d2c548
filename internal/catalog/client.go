package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"

	"brickdeals/internal/structures"
)

// SetRecord is one raw row from the external catalog API.
type SetRecord struct {
	Number       string `json:"setNumber"`
	Name         string `json:"name"`
	ThemeID      int    `json:"themeId"`
	Pieces       int    `json:"pieces"`
	Year         int    `json:"year"`
	ImageURL     string `json:"imageUrl"`
	Availability string `json:"availability"`
}

// Page is one page of catalog results. HasNext mirrors the API's own
// pagination signal; an empty Results slice also terminates pagination.
type Page struct {
	Results []SetRecord `json:"results"`
	HasNext bool        `json:"hasNext"`
}

type ClientInterface interface {
	FetchPage(ctx context.Context, page int, yearFrom, yearTo int) (*Page, error)
}

// Client talks to the bearer-authenticated, paginated catalog API.
type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	pageSize int
}

func NewClient(conf *structures.Config) ClientInterface {
	return &Client{
		http:     &http.Client{Timeout: conf.Catalog.Timeout},
		baseURL:  conf.Catalog.APIURL,
		apiKey:   conf.Catalog.APIKey,
		pageSize: conf.Catalog.PageSize,
	}
}

func (c *Client) FetchPage(ctx context.Context, page int, yearFrom, yearTo int) (*Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	q.Set("yearFrom", strconv.Itoa(yearFrom))
	q.Set("yearTo", strconv.Itoa(yearTo))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog page %d: unexpected status %d", page, resp.StatusCode)
	}

	var result Page
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("catalog page %d: decode: %w", page, err)
	}
	return &result, nil
}
