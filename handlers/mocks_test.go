package handlers

import (
	"context"

	"portfolio-api/models"

	"github.com/stretchr/testify/mock"
)

type mockBlogService struct{ mock.Mock }

func (m *mockBlogService) GetBlogs(ctx context.Context, params models.BlogListParams) ([]models.BlogDetail, models.Pagination, error) {
	args := m.Called(ctx, params)
	blogs, _ := args.Get(0).([]models.BlogDetail)
	return blogs, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockBlogService) GetBlog(ctx context.Context, id int) (*models.BlogDetail, error) {
	args := m.Called(ctx, id)
	blog, _ := args.Get(0).(*models.BlogDetail)
	return blog, args.Error(1)
}

func (m *mockBlogService) CreateBlog(ctx context.Context, req models.CreateBlogRequest) (*models.Blog, error) {
	args := m.Called(ctx, req)
	blog, _ := args.Get(0).(*models.Blog)
	return blog, args.Error(1)
}

func (m *mockBlogService) UpdateBlog(ctx context.Context, id int, req models.UpdateBlogRequest) (*models.Blog, error) {
	args := m.Called(ctx, id, req)
	blog, _ := args.Get(0).(*models.Blog)
	return blog, args.Error(1)
}

func (m *mockBlogService) DeleteBlog(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBlogService) GetStats(ctx context.Context) (*models.BlogStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.BlogStats)
	return stats, args.Error(1)
}

type mockCategoryService struct{ mock.Mock }

func (m *mockCategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}

func (m *mockCategoryService) GetCategory(ctx context.Context, param string) (*models.Category, error) {
	args := m.Called(ctx, param)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *mockCategoryService) UpdateCategory(ctx context.Context, id int, req models.UpdateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, id, req)
	category, _ := args.Get(0).(*models.Category)
	return category, args.Error(1)
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategoryService) GetBlogCategories(ctx context.Context, blogID int) ([]models.BlogCategory, error) {
	args := m.Called(ctx, blogID)
	links, _ := args.Get(0).([]models.BlogCategory)
	return links, args.Error(1)
}

func (m *mockCategoryService) AssignCategory(ctx context.Context, blogID, categoryID int) (*models.BlogCategory, error) {
	args := m.Called(ctx, blogID, categoryID)
	link, _ := args.Get(0).(*models.BlogCategory)
	return link, args.Error(1)
}

func (m *mockCategoryService) UnassignCategory(ctx context.Context, blogID, categoryID int) error {
	return m.Called(ctx, blogID, categoryID).Error(0)
}

type mockInteractionService struct{ mock.Mock }

func (m *mockInteractionService) GetComments(ctx context.Context, blogID int, page models.PageParams) ([]models.CommentDetail, models.Pagination, error) {
	args := m.Called(ctx, blogID, page)
	comments, _ := args.Get(0).([]models.CommentDetail)
	return comments, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockInteractionService) AddComment(ctx context.Context, blogID int, req models.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, blogID, req)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *mockInteractionService) UpdateComment(ctx context.Context, id int, req models.UpdateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, id, req)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *mockInteractionService) DeleteComment(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInteractionService) GetLikes(ctx context.Context, blogID int, page models.PageParams) ([]models.LikeDetail, models.Pagination, error) {
	args := m.Called(ctx, blogID, page)
	likes, _ := args.Get(0).([]models.LikeDetail)
	return likes, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockInteractionService) Like(ctx context.Context, blogID int, userID string) (*models.Like, error) {
	args := m.Called(ctx, blogID, userID)
	like, _ := args.Get(0).(*models.Like)
	return like, args.Error(1)
}

func (m *mockInteractionService) Unlike(ctx context.Context, blogID int, userID string) error {
	return m.Called(ctx, blogID, userID).Error(0)
}

func (m *mockInteractionService) Bookmark(ctx context.Context, blogID int, userID string) (*models.Bookmark, error) {
	args := m.Called(ctx, blogID, userID)
	bookmark, _ := args.Get(0).(*models.Bookmark)
	return bookmark, args.Error(1)
}

func (m *mockInteractionService) Unbookmark(ctx context.Context, blogID int, userID string) error {
	return m.Called(ctx, blogID, userID).Error(0)
}

func (m *mockInteractionService) GetViews(ctx context.Context, blogID int, page models.PageParams) ([]models.BlogView, models.Pagination, error) {
	args := m.Called(ctx, blogID, page)
	views, _ := args.Get(0).([]models.BlogView)
	return views, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockInteractionService) RecordView(ctx context.Context, blogID int, req models.CreateViewRequest) (*models.BlogView, error) {
	args := m.Called(ctx, blogID, req)
	view, _ := args.Get(0).(*models.BlogView)
	return view, args.Error(1)
}

func (m *mockInteractionService) AddHistory(ctx context.Context, blogID int, userID string) (*models.History, error) {
	args := m.Called(ctx, blogID, userID)
	entry, _ := args.Get(0).(*models.History)
	return entry, args.Error(1)
}

func (m *mockInteractionService) GetHistory(ctx context.Context, page models.PageParams) ([]models.BlogEntryDetail, models.Pagination, error) {
	args := m.Called(ctx, page)
	entries, _ := args.Get(0).([]models.BlogEntryDetail)
	return entries, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockInteractionService) DeleteHistory(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) GetUsers(ctx context.Context, page models.PageParams) ([]models.User, models.Pagination, error) {
	args := m.Called(ctx, page)
	users, _ := args.Get(0).([]models.User)
	return users, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.UserProfile, error) {
	args := m.Called(ctx, id, req)
	profile, _ := args.Get(0).(*models.UserProfile)
	return profile, args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserService) GetUserBlogs(ctx context.Context, id string, params models.BlogListParams) ([]models.BlogDetail, models.Pagination, error) {
	args := m.Called(ctx, id, params)
	blogs, _ := args.Get(0).([]models.BlogDetail)
	return blogs, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockUserService) GetBookmarks(ctx context.Context, id string, page models.PageParams) ([]models.BlogEntryDetail, models.Pagination, error) {
	args := m.Called(ctx, id, page)
	entries, _ := args.Get(0).([]models.BlogEntryDetail)
	return entries, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockUserService) GetHistory(ctx context.Context, id string, page models.PageParams) ([]models.BlogEntryDetail, models.Pagination, error) {
	args := m.Called(ctx, id, page)
	entries, _ := args.Get(0).([]models.BlogEntryDetail)
	return entries, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockUserService) Follow(ctx context.Context, followingID, followerID string) (*models.Follower, error) {
	args := m.Called(ctx, followingID, followerID)
	follow, _ := args.Get(0).(*models.Follower)
	return follow, args.Error(1)
}

func (m *mockUserService) Unfollow(ctx context.Context, followingID, followerID string) error {
	return m.Called(ctx, followingID, followerID).Error(0)
}

func (m *mockUserService) GetFollowing(ctx context.Context, id string, page models.PageParams) ([]models.FollowDetail, models.Pagination, error) {
	args := m.Called(ctx, id, page)
	follows, _ := args.Get(0).([]models.FollowDetail)
	return follows, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockUserService) GetFollowers(ctx context.Context, id string, page models.PageParams) ([]models.FollowDetail, models.Pagination, error) {
	args := m.Called(ctx, id, page)
	follows, _ := args.Get(0).([]models.FollowDetail)
	return follows, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockUserService) GetNotifications(ctx context.Context, id string, params models.NotificationListParams) ([]models.Notification, models.Pagination, error) {
	args := m.Called(ctx, id, params)
	notifications, _ := args.Get(0).([]models.Notification)
	return notifications, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockUserService) Provision(ctx context.Context, req models.ProvisionUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type mockReportService struct{ mock.Mock }

func (m *mockReportService) GetReports(ctx context.Context, params models.ReportListParams) ([]models.Report, models.Pagination, error) {
	args := m.Called(ctx, params)
	reports, _ := args.Get(0).([]models.Report)
	return reports, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *mockReportService) GetReport(ctx context.Context, id int) (*models.Report, error) {
	args := m.Called(ctx, id)
	report, _ := args.Get(0).(*models.Report)
	return report, args.Error(1)
}

func (m *mockReportService) CreateReport(ctx context.Context, req models.CreateReportRequest) (*models.Report, error) {
	args := m.Called(ctx, req)
	report, _ := args.Get(0).(*models.Report)
	return report, args.Error(1)
}

func (m *mockReportService) UpdateStatus(ctx context.Context, id int, status models.ReportStatus) (*models.Report, error) {
	args := m.Called(ctx, id, status)
	report, _ := args.Get(0).(*models.Report)
	return report, args.Error(1)
}
