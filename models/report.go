package models

import (
	"strings"
	"time"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

// Valid reports whether s is a known status.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportResolved, ReportDismissed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s ReportStatus) Terminal() bool {
	return s == ReportResolved || s == ReportDismissed
}

// CanTransition reports whether a report in status s may move to next.
// Only pending reports can change, and only to a terminal status.
func (s ReportStatus) CanTransition(next ReportStatus) bool {
	return s == ReportPending && next.Terminal()
}

// ContentKind is the tag of a reported content reference.
type ContentKind string

const (
	ContentBlog    ContentKind = "blog"
	ContentComment ContentKind = "comment"
	ContentUser    ContentKind = "user"
)

// ReportedContent identifies what a report points at. Blogs and comments
// have integer ids, users have text ids, so the id is kept as text and
// decoded per kind.
type ReportedContent struct {
	Kind ContentKind
	ID   string
}

// ParseContentKind normalises a client supplied content type.
func ParseContentKind(raw string) (ContentKind, bool) {
	switch k := ContentKind(strings.ToLower(strings.TrimSpace(raw))); k {
	case ContentBlog, ContentComment, ContentUser:
		return k, true
	}
	return "", false
}

type Report struct {
	ID          int          `json:"id" gorm:"primaryKey"`
	ReporterID  string       `json:"reporterId" gorm:"column:reporter_id;not null"`
	Reporter    *User        `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
	ContentType ContentKind  `json:"contentType" gorm:"column:content_type;type:varchar(20);not null"`
	ContentID   string       `json:"contentId" gorm:"column:content_id;type:text;not null"`
	Reason      string       `json:"reason" gorm:"type:varchar(100);not null"`
	Description *string      `json:"description"`
	Status      ReportStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt   time.Time    `json:"createdAt"`
	ResolvedAt  *time.Time   `json:"resolvedAt" gorm:"column:resolved_at"`
}

func (Report) TableName() string { return "reports" }

// Target returns the tagged reference this report points at.
func (r Report) Target() ReportedContent {
	return ReportedContent{Kind: r.ContentType, ID: r.ContentID}
}
