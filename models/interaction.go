package models

import "time"

type Like struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"column:user_id;not null"`
	BlogID    int       `json:"blogId" gorm:"column:blog_id;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string { return "likes" }

type Bookmark struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"column:user_id;not null"`
	BlogID    int       `json:"blogId" gorm:"column:blog_id;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Bookmark) TableName() string { return "bookmarks" }

type Comment struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"column:user_id;not null"`
	BlogID    int       `json:"blogId" gorm:"column:blog_id;not null"`
	Content   string    `json:"content" gorm:"type:varchar(500);not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Comment) TableName() string { return "comments" }

// BlogView keeps its row when the viewing user is deleted; user_id is set
// to null instead.
type BlogView struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	BlogID    int       `json:"blogId" gorm:"column:blog_id;not null"`
	UserID    *string   `json:"userId" gorm:"column:user_id"`
	IPAddress *string   `json:"ipAddress" gorm:"column:ip_address;type:varchar(45)"`
	UserAgent *string   `json:"userAgent" gorm:"column:user_agent;type:varchar(500)"`
	CreatedAt time.Time `json:"createdAt"`
}

func (BlogView) TableName() string { return "blog_views" }

// History is unique per (user, blog); adding it again refreshes CreatedAt.
type History struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"column:user_id;not null"`
	BlogID    int       `json:"blogId" gorm:"column:blog_id;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (History) TableName() string { return "history" }

type NotificationType string

const (
	NotificationFollow  NotificationType = "follow"
	NotificationComment NotificationType = "comment"
	NotificationLike    NotificationType = "like"
)

type Notification struct {
	ID        int              `json:"id" gorm:"primaryKey"`
	UserID    string           `json:"userId" gorm:"column:user_id;not null"`
	Type      NotificationType `json:"type" gorm:"type:varchar(50);not null"`
	Title     string           `json:"title" gorm:"type:varchar(255);not null"`
	Message   string           `json:"message" gorm:"not null"`
	RelatedID *int             `json:"relatedId" gorm:"column:related_id"`
	IsRead    int              `json:"isRead" gorm:"column:is_read;default:0"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (Notification) TableName() string { return "notifications" }
