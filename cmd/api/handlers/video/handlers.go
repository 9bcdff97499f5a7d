package handlers

import (
	"VidTube.com/cmd/video/service"
)

// Handler serves the /videos routes.
type Handler struct {
	svc     *service.VideoService
	tempDir string
}

// New builds the handler; uploaded files are staged under tempDir.
func New(svc *service.VideoService, tempDir string) *Handler {
	return &Handler{svc: svc, tempDir: tempDir}
}

type ListVideosParam struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	Query    string `query:"query"`
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
	UserID   string `query:"userId"`
}

type VideoFormParam struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

type PublishStatus struct {
	IsPublished bool `json:"is_published"`
}
