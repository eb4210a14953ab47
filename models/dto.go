package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type CreateBlogRequest struct {
	Title    string   `json:"title" binding:"required,max=255"`
	Content  string   `json:"content" binding:"required,max=1000"`
	Tags     []string `json:"tags"`
	AuthorID string   `json:"authorId" binding:"required"`
}

// UpdateBlogRequest is a partial update; nil or empty fields keep their
// current value.
type UpdateBlogRequest struct {
	Title   *string   `json:"title" binding:"omitempty,max=255"`
	Content *string   `json:"content" binding:"omitempty,max=1000"`
	Tags    *[]string `json:"tags"`
}

type CreateRevisionRequest struct {
	Title   string   `json:"title" binding:"required,max=255"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=500"`
	UserID  string `json:"userId" binding:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=500"`
}

// UserActionRequest carries the acting user for likes, bookmarks and history.
// When omitted the authenticated caller is used.
type UserActionRequest struct {
	UserID string `json:"userId" form:"userId"`
}

type CreateViewRequest struct {
	UserID    *string `json:"userId"`
	IPAddress *string `json:"ipAddress" binding:"omitempty,max=45"`
	UserAgent *string `json:"userAgent" binding:"omitempty,max=500"`
}

type AssignCategoryRequest struct {
	CategoryID int `json:"categoryId" binding:"required,min=1"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Slug        string  `json:"slug" binding:"required,max=100"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

type FollowRequest struct {
	FollowerID string `json:"followerId" form:"followerId"`
}

type UpdateProfileRequest struct {
	FirstName   *string    `json:"firstName" binding:"omitempty,max=100"`
	LastName    *string    `json:"lastName" binding:"omitempty,max=100"`
	Bio         *string    `json:"bio"`
	Avatar      *string    `json:"avatar" binding:"omitempty,max=500"`
	Website     *string    `json:"website" binding:"omitempty,max=255"`
	Location    *string    `json:"location" binding:"omitempty,max=100"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
}

type CreateHistoryRequest struct {
	UserID string `json:"userId" binding:"required"`
	BlogID int    `json:"blogId" binding:"required,min=1"`
}

type DeleteHistoryRequest struct {
	ID int `json:"id" binding:"required,min=1"`
}

// FlexibleID accepts either a JSON string or a JSON number.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

// Int returns the id as an integer, for kinds keyed by integer ids.
func (f FlexibleID) Int() (int, bool) {
	n, err := strconv.Atoi(string(f))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

type CreateReportRequest struct {
	ReporterID  string     `json:"reporterId" binding:"required"`
	ContentType string     `json:"contentType" binding:"required"`
	ContentID   FlexibleID `json:"contentId" binding:"required"`
	Reason      string     `json:"reason" binding:"required,max=100"`
	Description *string    `json:"description"`
}

type UpdateReportStatusRequest struct {
	Status ReportStatus `json:"status" binding:"required"`
}

type ProvisionUserRequest struct {
	Name     string
	Email    string
	Password string
}

// PageParams is embedded by every paginated listing.
type PageParams struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=10" binding:"min=1"`
}

const MaxPageLimit = 100

// Normalize fills defaults and caps the page size.
func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type BlogListParams struct {
	PageParams
	Tag       string `form:"tag"`
	Search    string `form:"search"`
	Author    string `form:"author"`
	Category  string `form:"category"`
	SortBy    string `form:"sortBy,default=createdAt"`
	SortOrder string `form:"sortOrder,default=desc"`
}

type ReportListParams struct {
	PageParams
	Status string `form:"status"`
}

type NotificationListParams struct {
	PageParams
	Unread bool `form:"unread"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes totalPages as ceil(total/limit).
func NewPagination(p PageParams, total int64) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}

type UserSummary struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  string  `json:"name,omitempty"`
	Image *string `json:"avatar,omitempty"`
}

type ProfileSummary struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Avatar    *string `json:"avatar"`
}

// BlogDetail is a blog joined with its author, the author's profile and
// its aggregate counts.
type BlogDetail struct {
	Blog
	Author        *UserSummary    `json:"author"`
	AuthorProfile *ProfileSummary `json:"authorProfile"`
	Likes         int64           `json:"likes"`
	Comments      int64           `json:"comments"`
	Views         int64           `json:"views"`
}

type CommentDetail struct {
	Comment
	User        *UserSummary    `json:"user"`
	UserProfile *ProfileSummary `json:"userProfile"`
}

type LikeDetail struct {
	Like
	User        *UserSummary    `json:"user"`
	UserProfile *ProfileSummary `json:"userProfile"`
}

// BlogEntryDetail is a user-to-blog row (bookmark or history) joined with
// the blog and its author.
type BlogEntryDetail struct {
	ID            int             `json:"id"`
	UserID        string          `json:"userId"`
	BlogID        int             `json:"blogId"`
	CreatedAt     time.Time       `json:"createdAt"`
	Blog          *Blog           `json:"blog"`
	Author        *UserSummary    `json:"author"`
	AuthorProfile *ProfileSummary `json:"authorProfile"`
}

// FollowDetail is a follow edge joined with the user on the other side.
type FollowDetail struct {
	Follower
	User        *UserSummary    `json:"user"`
	UserProfile *ProfileSummary `json:"userProfile"`
}

type AuthorStat struct {
	AuthorID    string  `json:"authorId"`
	AuthorEmail string  `json:"authorEmail"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Avatar      *string `json:"avatar"`
	PostCount   int64   `json:"postCount"`
	TotalViews  int64   `json:"totalViews"`
	TotalLikes  int64   `json:"totalLikes"`
}

type TagStat struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

type BlogTotals struct {
	Posts    int64
	Likes    int64
	Comments int64
	Views    int64
}

type BlogStats struct {
	TotalPosts             int64        `json:"totalPosts"`
	TotalLikes             int64        `json:"totalLikes"`
	TotalComments          int64        `json:"totalComments"`
	TotalViews             int64        `json:"totalViews"`
	AverageViewsPerPost    int64        `json:"averageViewsPerPost"`
	AverageLikesPerPost    int64        `json:"averageLikesPerPost"`
	AverageCommentsPerPost int64        `json:"averageCommentsPerPost"`
	TopPerformingPost      *BlogDetail  `json:"topPerformingPost"`
	RecentPosts            []BlogDetail `json:"recentPosts"`
	AuthorStats            []AuthorStat `json:"authorStats"`
	TagStats               []TagStat    `json:"tagStats"`
}
