package handlers

import (
	"net/http"
	"testing"

	"portfolio-api/helper"
	"portfolio-api/models"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func blogEngine(svc *mockBlogService) *gin.Engine {
	h := helper.NewHTTPHelper()
	handler := NewBlogHandler(svc, h)
	return newTestEngine(h, func(api *gin.RouterGroup) {
		api.GET("/blogs", handler.GetBlogs)
		api.POST("/blogs", handler.CreateBlog)
		api.GET("/blogs/stats", handler.GetStats)
		api.GET("/blogs/:id", handler.GetBlog)
		api.PATCH("/blogs/:id", handler.UpdateBlog)
		api.DELETE("/blogs/:id", handler.DeleteBlog)
	})
}

func TestGetBlogsBindsFilters(t *testing.T) {
	svc := new(mockBlogService)
	svc.On("GetBlogs", mock.Anything, mock.MatchedBy(func(p models.BlogListParams) bool {
		return p.Page == 2 && p.Limit == 5 && p.Tag == "go" && p.SortBy == "createdAt" && p.SortOrder == "desc"
	})).Return([]models.BlogDetail{{Blog: models.Blog{ID: 1, Title: "Hello"}}},
		models.NewPagination(models.PageParams{Page: 2, Limit: 5}, 6), nil)

	w := perform(blogEngine(svc), http.MethodGet, "/api/blogs?page=2&limit=5&tag=go", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	res := decodeResponse(t, w)
	assert.True(t, res.Success)
	require.NotNil(t, res.Pagination)
	assert.Equal(t, int64(6), res.Pagination.Total)
	assert.Equal(t, 2, res.Pagination.TotalPages)
	svc.AssertExpectations(t)
}

func TestGetBlogsRejectsBadPage(t *testing.T) {
	svc := new(mockBlogService)

	w := perform(blogEngine(svc), http.MethodGet, "/api/blogs?page=abc", "", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetBlogs", mock.Anything, mock.Anything)
}

func TestCreateBlogValidation(t *testing.T) {
	svc := new(mockBlogService)

	w := perform(blogEngine(svc), http.MethodPost, "/api/blogs", `{"title":"T","content":"C"}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	res := decodeResponse(t, w)
	assert.Equal(t, "Validation failed", res.Error)
	assert.Contains(t, res.Details, "authorId")
	svc.AssertNotCalled(t, "CreateBlog", mock.Anything, mock.Anything)
}

func TestCreateBlog(t *testing.T) {
	svc := new(mockBlogService)
	req := models.CreateBlogRequest{Title: "T", Content: "C", Tags: []string{"go"}, AuthorID: "u1"}
	svc.On("CreateBlog", mock.Anything, req).Return(&models.Blog{ID: 3, Title: "T", AuthorID: "u1"}, nil)

	w := perform(blogEngine(svc), http.MethodPost, "/api/blogs",
		`{"title":"T","content":"C","tags":["go"],"authorId":"u1"}`, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestCreateBlogUnknownAuthor(t *testing.T) {
	svc := new(mockBlogService)
	svc.On("CreateBlog", mock.Anything, mock.Anything).Return(nil, models.NewNotFoundError("Author not found"))

	w := perform(blogEngine(svc), http.MethodPost, "/api/blogs", `{"title":"T","content":"C","authorId":"ghost"}`, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Author not found", decodeResponse(t, w).Error)
}

func TestGetBlog(t *testing.T) {
	svc := new(mockBlogService)
	svc.On("GetBlog", mock.Anything, 7).Return(nil, models.ErrBlogNotFound)
	svc.On("GetBlog", mock.Anything, 8).Return(nil, errors.New("connection reset"))
	r := blogEngine(svc)

	w := perform(r, http.MethodGet, "/api/blogs/7", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Blog not found", decodeResponse(t, w).Error)

	w = perform(r, http.MethodGet, "/api/blogs/8", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch blog", decodeResponse(t, w).Error)

	w = perform(r, http.MethodGet, "/api/blogs/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid blog ID", decodeResponse(t, w).Error)
}

func TestUpdateBlogPassesPartialFields(t *testing.T) {
	svc := new(mockBlogService)
	svc.On("UpdateBlog", mock.Anything, 4, mock.MatchedBy(func(req models.UpdateBlogRequest) bool {
		return req.Title != nil && *req.Title == "New" && req.Content == nil && req.Tags == nil
	})).Return(&models.Blog{ID: 4, Title: "New"}, nil)

	w := perform(blogEngine(svc), http.MethodPatch, "/api/blogs/4", `{"title":"New"}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDeleteBlog(t *testing.T) {
	svc := new(mockBlogService)
	svc.On("DeleteBlog", mock.Anything, 5).Return(nil)

	w := perform(blogEngine(svc), http.MethodDelete, "/api/blogs/5", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Blog deleted successfully", decodeResponse(t, w).Message)
}

func TestGetStatsRouteIsNotAnID(t *testing.T) {
	svc := new(mockBlogService)
	svc.On("GetStats", mock.Anything).Return(&models.BlogStats{TotalPosts: 2}, nil)

	w := perform(blogEngine(svc), http.MethodGet, "/api/blogs/stats", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
