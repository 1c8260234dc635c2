package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tunedeck/backend/internal/apperr"
	"github.com/tunedeck/backend/internal/config"
)

func newVideoService(upstream *httptest.Server) *VideoService {
	return NewVideoService(&config.Config{
		YouTubeAPIKey:    "test-key",
		YouTubeBaseURL:   upstream.URL,
		YouTubeTimeout:   5 * time.Second,
		SearchMaxResults: 10,
		SearchResultsCap: 50,
	})
}

func TestVideoService_Search(t *testing.T) {
	var lastQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/search") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		lastQuery = r.URL.RawQuery
		fmt.Fprint(w, `{
			"items": [
				{
					"id": {"videoId": "abc123"},
					"snippet": {
						"title": "First Song",
						"channelTitle": "Channel One",
						"thumbnails": {
							"default": {"url": "http://img/default1.jpg"},
							"medium": {"url": "http://img/medium1.jpg"}
						}
					}
				},
				{
					"id": {"videoId": "def456"},
					"snippet": {
						"title": "Second Song",
						"channelTitle": "Channel Two",
						"thumbnails": {
							"default": {"url": "http://img/default2.jpg"}
						}
					}
				},
				{
					"id": {},
					"snippet": {"title": "Channel Result"}
				}
			]
		}`)
	}))
	defer upstream.Close()

	svc := newVideoService(upstream)

	results, err := svc.Search(context.Background(), "road trip", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 video results, got %d", len(results))
	}

	first := results[0]
	if first.VideoID != "abc123" || first.Title != "First Song" || first.ChannelTitle != "Channel One" {
		t.Errorf("unexpected first result: %+v", first)
	}
	if first.ThumbnailURL != "http://img/medium1.jpg" {
		t.Errorf("expected the medium thumbnail, got %q", first.ThumbnailURL)
	}
	if first.SourceURL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("unexpected source url %q", first.SourceURL)
	}
	if results[1].ThumbnailURL != "http://img/default2.jpg" {
		t.Errorf("expected fallback to the default thumbnail, got %q", results[1].ThumbnailURL)
	}

	for _, want := range []string{"q=road+trip", "type=video", "videoCategoryId=10", "maxResults=10", "key=test-key"} {
		if !strings.Contains(lastQuery, want) {
			t.Errorf("query string missing %q: %s", want, lastQuery)
		}
	}

	if _, err := svc.Search(context.Background(), "anything", 200); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !strings.Contains(lastQuery, "maxResults=50") {
		t.Errorf("expected the results cap applied, got %s", lastQuery)
	}
}

func TestVideoService_Search_Validation(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called for an empty query")
	}))
	defer upstream.Close()

	svc := newVideoService(upstream)
	if _, err := svc.Search(context.Background(), "", 0); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestVideoService_Search_ProviderError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"message": "quota exceeded"}}`)
	}))
	defer upstream.Close()

	svc := newVideoService(upstream)
	_, err := svc.Search(context.Background(), "anything", 0)
	if !errors.Is(err, apperr.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("provider message lost: %v", err)
	}
}

func TestVideoService_GetVideo(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "abc123" {
			fmt.Fprint(w, `{
				"items": [
					{
						"id": "abc123",
						"snippet": {
							"title": "First Song",
							"channelTitle": "Channel One",
							"description": "a song",
							"thumbnails": {"default": {"url": "http://img/default1.jpg"}}
						},
						"contentDetails": {"duration": "PT3M33S"}
					}
				]
			}`)
			return
		}
		fmt.Fprint(w, `{"items": []}`)
	}))
	defer upstream.Close()

	svc := newVideoService(upstream)

	detail, err := svc.GetVideo(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("GetVideo() error = %v", err)
	}
	if detail.VideoID != "abc123" || detail.Duration != "PT3M33S" || detail.Description != "a song" {
		t.Errorf("unexpected detail: %+v", detail)
	}

	if _, err := svc.GetVideo(context.Background(), "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found for an unknown video, got %v", err)
	}
	if _, err := svc.GetVideo(context.Background(), ""); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
