// Package source pulls candidate items from Reddit-style listing endpoints.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/trungnb/gigfeed/internal/models"
)

const permalinkBase = "https://reddit.com"

// Client fetches the newest posts of a named source (a subreddit) through
// the public JSON listing API.
type Client struct {
	client  *resty.Client
	baseURL string
}

// NewClient builds a listing client with a bounded timeout. There is no
// retry at this level: a failed fetch is reported so the pipeline can skip
// the source until its next tick.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", "gigfeed/1.0"),
		baseURL: baseURL,
	}
}

// listing mirrors the slice of the Reddit listing payload we consume.
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID        string `json:"id"`
				Title     string `json:"title"`
				Selftext  string `json:"selftext"`
				Permalink string `json:"permalink"`
				Subreddit string `json:"subreddit"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// ListNew returns up to limit of the newest items from the named source, in
// the order the listing reports them.
func (c *Client) ListNew(ctx context.Context, source string, limit int) ([]models.CandidateItem, error) {
	url := fmt.Sprintf("%s/r/%s/new.json", c.baseURL, source)

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetQueryParam("raw_json", "1").
		SetHeader("Accept", "application/json").
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing from %s: %w", source, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode(), source)
	}

	var payload listing
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse listing from %s: %w", source, err)
	}

	items := make([]models.CandidateItem, 0, len(payload.Data.Children))
	for _, child := range payload.Data.Children {
		post := child.Data
		if post.ID == "" {
			continue
		}
		items = append(items, models.CandidateItem{
			ID:        post.ID,
			Source:    source,
			Title:     post.Title,
			Body:      post.Selftext,
			Permalink: permalinkBase + post.Permalink,
		})
		if len(items) == limit {
			break
		}
	}

	return items, nil
}
