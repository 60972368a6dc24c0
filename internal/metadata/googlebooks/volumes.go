package googlebooks

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

// ErrNoResults is returned when a query matches no volumes.
var ErrNoResults = errors.New("googlebooks: no results")

// Volume is the flattened metadata extracted from a Google Books hit.
// Description is plain Markdown; the API returns HTML for some volumes.
type Volume struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	CoverURL      string `json:"cover_url"`
	PageCount     int    `json:"page_count"`
	PublishedDate string `json:"published_date"`
	ISBN          string `json:"isbn"`
}

// FetchByISBN looks up a single volume by ISBN.
// Returns ErrNoResults when the API knows nothing about the identifier.
func (c *Client) FetchByISBN(ctx context.Context, isbn string) (*Volume, error) {
	return c.fetch(ctx, "isbn:"+isbn)
}

// SearchByTitle looks up the best volume match for a title, optionally
// narrowed by author.
func (c *Client) SearchByTitle(ctx context.Context, title, author string) (*Volume, error) {
	query := "intitle:" + strings.TrimSpace(title)
	if author != "" {
		query += "+inauthor:" + strings.TrimSpace(author)
	}
	return c.fetch(ctx, query)
}

func (c *Client) fetch(ctx context.Context, query string) (*Volume, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", "1")

	requestURL := c.baseURL + "?" + params.Encode()

	if c.logger != nil {
		c.logger.Debug("querying Google Books",
			"query", query,
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("volumes request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("volumes request failed: status %d", resp.StatusCode)
	}

	var volumesResp volumesResponse
	if err := json.UnmarshalRead(resp.Body, &volumesResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if volumesResp.TotalItems == 0 || len(volumesResp.Items) == 0 {
		return nil, ErrNoResults
	}

	return flattenVolume(&volumesResp.Items[0]), nil
}

// flattenVolume converts a raw API item into the Volume shape services use.
func flattenVolume(item *volumeItem) *Volume {
	info := &item.VolumeInfo

	volume := &Volume{
		Title:         info.Title,
		Author:        strings.Join(info.Authors, ", "),
		Description:   htmlToMarkdown(info.Description),
		PageCount:     info.PageCount,
		PublishedDate: info.PublishedDate,
	}

	// Prefer the larger thumbnail, forced to https. Google serves the
	// image links over http by default.
	cover := info.ImageLinks.Thumbnail
	if cover == "" {
		cover = info.ImageLinks.SmallThumbnail
	}
	volume.CoverURL = strings.Replace(cover, "http://", "https://", 1)

	for _, ident := range info.IndustryIdentifiers {
		if ident.Type == "ISBN_13" {
			volume.ISBN = ident.Identifier
			break
		}
		if ident.Type == "ISBN_10" && volume.ISBN == "" {
			volume.ISBN = ident.Identifier
		}
	}

	return volume
}

// volumesResponse is the raw Google Books API response.
type volumesResponse struct {
	TotalItems int          `json:"totalItems"`
	Items      []volumeItem `json:"items"`
}

type volumeItem struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher,omitempty"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	PageCount           int                  `json:"pageCount"`
	ImageLinks          imageLinks           `json:"imageLinks"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}
