package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tunedeck/backend/internal/apperr"
	"github.com/tunedeck/backend/internal/config"
)

// VideoSummary is one ranked search result from the external provider.
type VideoSummary struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	ThumbnailURL string `json:"thumbnail_url"`
	SourceURL    string `json:"source_url"`
}

// VideoDetail is the full metadata of a single video.
type VideoDetail struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	ThumbnailURL string `json:"thumbnail_url"`
	SourceURL    string `json:"source_url"`
	Duration     string `json:"duration"`
	Description  string `json:"description"`
}

// VideoService is a thin pass-through to the external video-search provider.
// Results come back in upstream order; no pagination, ranking or caching.
type VideoService struct {
	cfg    *config.Config
	client *http.Client
}

func NewVideoService(cfg *config.Config) *VideoService {
	return &VideoService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.YouTubeTimeout},
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		Snippet        snippet `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type snippet struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	Description  string `json:"description"`
	Thumbnails   struct {
		Default struct {
			URL string `json:"url"`
		} `json:"default"`
		Medium struct {
			URL string `json:"url"`
		} `json:"medium"`
	} `json:"thumbnails"`
}

type providerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (sn snippet) thumbnail() string {
	if sn.Thumbnails.Medium.URL != "" {
		return sn.Thumbnails.Medium.URL
	}
	return sn.Thumbnails.Default.URL
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// Search queries the provider for music videos matching q, capped at
// maxResults (provider order, music category).
func (s *VideoService) Search(ctx context.Context, q string, maxResults int) ([]VideoSummary, error) {
	if q == "" {
		return nil, fmt.Errorf("query is required: %w", apperr.ErrValidation)
	}
	if maxResults <= 0 {
		maxResults = s.cfg.SearchMaxResults
	}
	if maxResults > s.cfg.SearchResultsCap {
		maxResults = s.cfg.SearchResultsCap
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", q)
	params.Set("type", "video")
	params.Set("videoCategoryId", "10")
	params.Set("order", "relevance")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("key", s.cfg.YouTubeAPIKey)

	var parsed searchResponse
	if err := s.get(ctx, "/search", params, &parsed); err != nil {
		return nil, err
	}

	results := make([]VideoSummary, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.ID.VideoID == "" {
			continue
		}
		results = append(results, VideoSummary{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			ThumbnailURL: item.Snippet.thumbnail(),
			SourceURL:    watchURL(item.ID.VideoID),
		})
	}
	return results, nil
}

// GetVideo fetches the detail record of one video.
func (s *VideoService) GetVideo(ctx context.Context, videoID string) (*VideoDetail, error) {
	if videoID == "" {
		return nil, fmt.Errorf("video id is required: %w", apperr.ErrValidation)
	}

	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", videoID)
	params.Set("key", s.cfg.YouTubeAPIKey)

	var parsed videosResponse
	if err := s.get(ctx, "/videos", params, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Items) == 0 {
		return nil, fmt.Errorf("video not found: %w", apperr.ErrNotFound)
	}

	item := parsed.Items[0]
	return &VideoDetail{
		VideoID:      item.ID,
		Title:        item.Snippet.Title,
		ChannelTitle: item.Snippet.ChannelTitle,
		ThumbnailURL: item.Snippet.thumbnail(),
		SourceURL:    watchURL(item.ID),
		Duration:     item.ContentDetails.Duration,
		Description:  item.Snippet.Description,
	}, nil
}

func (s *VideoService) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.YouTubeBaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("search provider unreachable: %w", apperr.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var perr providerError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&perr); decodeErr == nil && perr.Error.Message != "" {
			return fmt.Errorf("search provider error: %s: %w", perr.Error.Message, apperr.ErrUpstream)
		}
		return fmt.Errorf("search provider returned status %d: %w", resp.StatusCode, apperr.ErrUpstream)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode search provider response: %w", apperr.ErrUpstream)
	}
	return nil
}
