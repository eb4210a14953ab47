package models

import (
	"time"

	"github.com/lib/pq"
)

type Blog struct {
	ID        int            `json:"id" gorm:"primaryKey"`
	Tags      pq.StringArray `json:"tags" gorm:"type:text[]"`
	Title     string         `json:"title" gorm:"type:varchar(255);not null"`
	Content   string         `json:"content" gorm:"type:varchar(1000);not null"`
	AuthorID  string         `json:"authorId" gorm:"column:author_id;not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (Blog) TableName() string { return "blog" }

// BlogRevision is an immutable snapshot of a blog. Version is assigned as
// the highest existing version for the blog plus one.
type BlogRevision struct {
	ID        int            `json:"id" gorm:"primaryKey"`
	BlogID    int            `json:"blogId" gorm:"column:blog_id;not null"`
	Title     string         `json:"title" gorm:"type:varchar(255);not null"`
	Content   string         `json:"content" gorm:"not null"`
	Tags      pq.StringArray `json:"tags" gorm:"type:text[]"`
	Version   int            `json:"version" gorm:"not null"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (BlogRevision) TableName() string { return "blog_revisions" }

type Category struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Category) TableName() string { return "categories" }

type BlogCategory struct {
	ID         int       `json:"id" gorm:"primaryKey"`
	BlogID     int       `json:"blogId" gorm:"column:blog_id;not null"`
	CategoryID int       `json:"categoryId" gorm:"column:category_id;not null"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (BlogCategory) TableName() string { return "blog_categories" }
