package service

import (
	"beyondextra_backend/internal/config"
	"beyondextra_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const youtubeAPIBase = "https://www.googleapis.com/youtube/v3"

var (
	ErrQueryRequired    = errors.New("query is required")
	ErrYouTubeNotConfig = errors.New("YouTube API key not configured")
)

// PlaylistItem is one video inside a playlist.
type PlaylistItem struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	Position     int    `json:"position"`
	ChannelTitle string `json:"channelTitle"`
}

// PlaylistInfo is a playlist search hit with its videos.
type PlaylistInfo struct {
	PlaylistID   string         `json:"playlistId"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Thumbnail    string         `json:"thumbnail"`
	ChannelTitle string         `json:"channelTitle"`
	VideoCount   int            `json:"videoCount"`
	Videos       []PlaylistItem `json:"videos"`
}

// YouTubeService searches the YouTube Data API for learning playlists and
// caches results in redis so repeated searches don't burn API quota.
type YouTubeService struct {
	Cfg     config.YouTubeConfig
	Redis   *redis.Client
	BaseURL string
	client  *http.Client
}

func NewYouTubeService(cfg config.YouTubeConfig, rdb *redis.Client) *YouTubeService {
	return &YouTubeService{
		Cfg:     cfg,
		Redis:   rdb,
		BaseURL: youtubeAPIBase,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type ytThumbnails struct {
	Medium  struct{ URL string `json:"url"` } `json:"medium"`
	Default struct{ URL string `json:"url"` } `json:"default"`
}

func (t ytThumbnails) best() string {
	if t.Medium.URL != "" {
		return t.Medium.URL
	}
	return t.Default.URL
}

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			PlaylistID string `json:"playlistId"`
		} `json:"id"`
		Snippet struct {
			Title        string       `json:"title"`
			Description  string       `json:"description"`
			ChannelTitle string       `json:"channelTitle"`
			Thumbnails   ytThumbnails `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type ytPlaylistItemsResponse struct {
	Items []struct {
		Snippet struct {
			Title        string       `json:"title"`
			Description  string       `json:"description"`
			Position     int          `json:"position"`
			ChannelTitle string       `json:"channelTitle"`
			Thumbnails   ytThumbnails `json:"thumbnails"`
			ResourceID   struct {
				Kind    string `json:"kind"`
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

func (s *YouTubeService) SearchPlaylists(ctx context.Context, query string, maxResults int) ([]PlaylistInfo, error) {
	if query == "" {
		return nil, ErrQueryRequired
	}
	if s.Cfg.APIKey == "" {
		return nil, ErrYouTubeNotConfig
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	cacheKey := fmt.Sprintf("yt:playlists:%s:%d", query, maxResults)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var playlists []PlaylistInfo
			if err := json.Unmarshal([]byte(cached), &playlists); err == nil {
				return playlists, nil
			}
		}
	}

	searchURL := fmt.Sprintf("%s/search?part=snippet&type=playlist&q=%s&maxResults=%d&key=%s",
		s.BaseURL, url.QueryEscape(query), maxResults, s.Cfg.APIKey)

	var search ytSearchResponse
	if err := s.getJSON(ctx, searchURL, &search); err != nil {
		return nil, err
	}
	if search.Error != nil {
		return nil, fmt.Errorf("YouTube API error: %s", search.Error.Message)
	}

	playlists := make([]PlaylistInfo, 0, len(search.Items))
	for _, item := range search.Items {
		playlistID := item.ID.PlaylistID
		if playlistID == "" {
			continue
		}

		itemsURL := fmt.Sprintf("%s/playlistItems?part=snippet&playlistId=%s&maxResults=50&key=%s",
			s.BaseURL, url.QueryEscape(playlistID), s.Cfg.APIKey)

		var itemsResp ytPlaylistItemsResponse
		if err := s.getJSON(ctx, itemsURL, &itemsResp); err != nil {
			logger.Log.Warn("failed to fetch playlist items",
				zap.String("playlistId", playlistID), zap.Error(err))
			continue
		}

		videos := make([]PlaylistItem, 0, len(itemsResp.Items))
		for _, v := range itemsResp.Items {
			if v.Snippet.ResourceID.Kind != "youtube#video" {
				continue
			}
			videos = append(videos, PlaylistItem{
				VideoID:      v.Snippet.ResourceID.VideoID,
				Title:        v.Snippet.Title,
				Description:  v.Snippet.Description,
				Thumbnail:    v.Snippet.Thumbnails.best(),
				Position:     v.Snippet.Position,
				ChannelTitle: v.Snippet.ChannelTitle,
			})
		}

		playlists = append(playlists, PlaylistInfo{
			PlaylistID:   playlistID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Thumbnail:    item.Snippet.Thumbnails.best(),
			ChannelTitle: item.Snippet.ChannelTitle,
			VideoCount:   len(videos),
			Videos:       videos,
		})
	}

	if s.Redis != nil {
		if data, err := json.Marshal(playlists); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, s.Cfg.CacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache playlist search", zap.Error(err))
			}
		}
	}

	return playlists, nil
}

func (s *YouTubeService) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Error payloads still decode; callers inspect the embedded error
	// message, which is more useful than the bare status code.
	return json.NewDecoder(resp.Body).Decode(out)
}
