package db

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"VidTube.com/cmd/model"
)

type SortKey string

const (
	SortCreatedAt SortKey = "created_at"
	SortViews     SortKey = "views"
	SortDuration  SortKey = "duration"
	SortTitle     SortKey = "title"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortCreatedAt, SortViews, SortDuration, SortTitle:
		return true
	}
	return false
}

// VideoQuery is a resolved discovery request. Zero OwnerID means any owner,
// Search is matched as a case-insensitive substring of title or description.
type VideoQuery struct {
	OwnerID       int64
	PublishedOnly bool
	Search        string
	Sort          SortKey
	Desc          bool
	Page          int
	Limit         int
}

func (q VideoQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes LIKE wildcards so s only matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func byOwner(ownerID int64) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("owner_id = ?", ownerID)
	}
}

func published(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_published = ?", true)
}

func matching(search string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + EscapeLike(strings.ToLower(search)) + "%"
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(
			tx.Session(&gorm.Session{NewDB: true}).
				Where("LOWER(title) LIKE ?", pattern).
				Or("LOWER(description) LIKE ?", pattern),
		)
	}
}

func ordered(key SortKey, desc bool) func(*gorm.DB) *gorm.DB {
	if !key.Valid() {
		key = SortCreatedAt
	}
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Order(clause.OrderByColumn{Column: clause.Column{Name: string(key)}, Desc: desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
	}
}

func paginate(q VideoQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(q.Offset()).Limit(q.Limit)
	}
}

func withOwner(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Owner", func(tx *gorm.DB) *gorm.DB {
		return tx.Select(model.OwnerSummaryColumns)
	})
}

// filters are the stages shared by the count and the page query.
func filters(q VideoQuery) []func(*gorm.DB) *gorm.DB {
	scopes := make([]func(*gorm.DB) *gorm.DB, 0, 3)
	if q.OwnerID != 0 {
		scopes = append(scopes, byOwner(q.OwnerID))
	}
	if q.PublishedOnly {
		scopes = append(scopes, published)
	}
	if strings.TrimSpace(q.Search) != "" {
		scopes = append(scopes, matching(strings.TrimSpace(q.Search)))
	}
	return scopes
}
