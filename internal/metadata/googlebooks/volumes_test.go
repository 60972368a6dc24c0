package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenVolume_JoinsAuthorsAndPrefersISBN13(t *testing.T) {
	item := &volumeItem{
		ID: "abc123",
		VolumeInfo: volumeInfo{
			Title:         "Good Omens",
			Authors:       []string{"Terry Pratchett", "Neil Gaiman"},
			PublishedDate: "1990",
			PageCount:     412,
			ImageLinks: imageLinks{
				SmallThumbnail: "http://books.google.com/small.jpg",
				Thumbnail:      "http://books.google.com/thumb.jpg",
			},
			IndustryIdentifiers: []industryIdentifier{
				{Type: "ISBN_10", Identifier: "0575048000"},
				{Type: "ISBN_13", Identifier: "9780575048003"},
			},
		},
	}

	volume := flattenVolume(item)

	assert.Equal(t, "Good Omens", volume.Title)
	assert.Equal(t, "Terry Pratchett, Neil Gaiman", volume.Author)
	assert.Equal(t, "9780575048003", volume.ISBN)
	assert.Equal(t, "https://books.google.com/thumb.jpg", volume.CoverURL)
	assert.Equal(t, 412, volume.PageCount)
}

func TestFlattenVolume_FallsBackToSmallThumbnailAndISBN10(t *testing.T) {
	item := &volumeItem{
		VolumeInfo: volumeInfo{
			Title: "Obscure Book",
			ImageLinks: imageLinks{
				SmallThumbnail: "http://books.google.com/small.jpg",
			},
			IndustryIdentifiers: []industryIdentifier{
				{Type: "ISBN_10", Identifier: "0575048000"},
			},
		},
	}

	volume := flattenVolume(item)

	assert.Equal(t, "https://books.google.com/small.jpg", volume.CoverURL)
	assert.Equal(t, "0575048000", volume.ISBN)
}

func TestHTMLToMarkdown_ConvertsMarkup(t *testing.T) {
	got := htmlToMarkdown("<p>A <b>bold</b> description.</p>")
	assert.Equal(t, "A **bold** description.", got)
}

func TestHTMLToMarkdown_LeavesPlainTextAlone(t *testing.T) {
	plain := "Just a description with < 3 symbols and no tags."
	assert.Equal(t, plain, htmlToMarkdown(plain))
}

func TestFetchByISBN_ConvertsDescriptionToMarkdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "isbn:9780575048003", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalItems": 1,
			"items": [{
				"id": "abc123",
				"volumeInfo": {
					"title": "Good Omens",
					"authors": ["Terry Pratchett"],
					"description": "<p>A <b>bold</b> description.</p>",
					"pageCount": 412
				}
			}]
		}`))
	}))
	defer server.Close()

	client := NewClient(nil)
	client.baseURL = server.URL

	volume, err := client.FetchByISBN(context.Background(), "9780575048003")
	require.NoError(t, err)
	assert.Equal(t, "Good Omens", volume.Title)
	assert.Equal(t, "A **bold** description.", volume.Description)
}

func TestFetchByISBN_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer server.Close()

	client := NewClient(nil)
	client.baseURL = server.URL

	_, err := client.FetchByISBN(context.Background(), "9780000000000")
	assert.ErrorIs(t, err, ErrNoResults)
}
