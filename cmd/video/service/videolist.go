package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/model"
	"VidTube.com/cmd/video/dal/db"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// sortFields maps the api sort names onto columns.
var sortFields = map[string]db.SortKey{
	"createdAt": db.SortCreatedAt,
	"views":     db.SortViews,
	"duration":  db.SortDuration,
	"title":     db.SortTitle,
}

type ListVideosRequest struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
	UserID   string
}

type VideoPage struct {
	Videos        []*model.Video `json:"videos"`
	TotalVideos   int64          `json:"total_videos"`
	Limit         int            `json:"limit"`
	Page          int            `json:"page"`
	TotalPages    int            `json:"total_pages"`
	PagingCounter int            `json:"paging_counter"`
	HasPrevPage   bool           `json:"has_prev_page"`
	HasNextPage   bool           `json:"has_next_page"`
	PrevPage      *int           `json:"prev_page"`
	NextPage      *int           `json:"next_page"`
}

// resolveQuery turns request parameters into a store query.
// Unpublished videos are only listed for their owner browsing their own channel.
func resolveQuery(actorID int64, req ListVideosRequest) (db.VideoQuery, error) {
	q := db.VideoQuery{
		Page:          req.Page,
		Limit:         req.Limit,
		Search:        strings.TrimSpace(req.Query),
		Sort:          db.SortCreatedAt,
		Desc:          req.SortType != "asc",
		PublishedOnly: true,
	}
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if key, ok := sortFields[req.SortBy]; ok {
		q.Sort = key
	}
	if req.UserID != "" {
		ownerID, ok := utils.ParseID(req.UserID)
		if !ok {
			return db.VideoQuery{}, errno.InvalidArgumentErr.WithMessage("Invalid userId")
		}
		q.OwnerID = ownerID
		if ownerID == actorID {
			q.PublishedOnly = false
		}
	}
	return q, nil
}

func newVideoPage(videos []*model.Video, total int64, page, limit int) *VideoPage {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages == 0 {
		totalPages = 1
	}
	p := &VideoPage{
		Videos:        videos,
		TotalVideos:   total,
		Limit:         limit,
		Page:          page,
		TotalPages:    totalPages,
		PagingCounter: (page-1)*limit + 1,
		HasPrevPage:   page > 1,
		HasNextPage:   page < totalPages,
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	return p
}

func (s *VideoService) ListVideos(ctx context.Context, actorID int64, req ListVideosRequest) (*VideoPage, error) {
	q, err := resolveQuery(actorID, req)
	if err != nil {
		return nil, err
	}
	videos, total, err := s.videos.List(ctx, q)
	if err != nil {
		return nil, errno.Internal(ctx, err, "list videos")
	}
	return newVideoPage(videos, total, q.Page, q.Limit), nil
}
