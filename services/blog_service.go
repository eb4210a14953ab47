package services

import (
	"context"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"portfolio-api/cache"
	"portfolio-api/models"
	"portfolio-api/repositories"
	Logger "portfolio-api/utils/log"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

const recentPostsLimit = 5

type BlogService interface {
	GetBlogs(ctx context.Context, params models.BlogListParams) ([]models.BlogDetail, models.Pagination, error)
	GetBlog(ctx context.Context, id int) (*models.BlogDetail, error)
	CreateBlog(ctx context.Context, req models.CreateBlogRequest) (*models.Blog, error)
	UpdateBlog(ctx context.Context, id int, req models.UpdateBlogRequest) (*models.Blog, error)
	DeleteBlog(ctx context.Context, id int) error
	GetStats(ctx context.Context) (*models.BlogStats, error)
}

type blogService struct {
	store    *repositories.Store
	cache    cache.Cache
	statsTTL time.Duration
	// statsGen moves on every invalidation. Stats computed across a move
	// are returned but not cached.
	statsGen atomic.Uint64
}

func NewBlogService(store *repositories.Store, c cache.Cache, statsTTL time.Duration) BlogService {
	return &blogService{store: store, cache: c, statsTTL: statsTTL}
}

func (s *blogService) GetBlogs(ctx context.Context, params models.BlogListParams) ([]models.BlogDetail, models.Pagination, error) {
	params.PageParams.Normalize()
	blogs, total, err := s.store.Blogs.GetList(ctx, params)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return blogs, models.NewPagination(params.PageParams, total), nil
}

func (s *blogService) GetBlog(ctx context.Context, id int) (*models.BlogDetail, error) {
	blog, err := s.store.Blogs.GetDetail(ctx, id)
	if repositories.IsNotFound(err) {
		return nil, models.ErrBlogNotFound
	}
	return blog, err
}

func (s *blogService) CreateBlog(ctx context.Context, req models.CreateBlogRequest) (*models.Blog, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" || strings.TrimSpace(req.AuthorID) == "" {
		return nil, models.NewValidationError("Title, content, and authorId are required")
	}

	blog := &models.Blog{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     normalizeTags(req.Tags),
		AuthorID: req.AuthorID,
	}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		ok, err := tx.Users.Exists(ctx, req.AuthorID)
		if err != nil {
			return err
		}
		if !ok {
			return models.NewNotFoundError("Author not found")
		}
		return tx.Blogs.Create(ctx, blog)
	})
	if repositories.IsForeignKeyViolation(err) {
		return nil, models.NewNotFoundError("Author not found")
	}
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return blog, nil
}

// UpdateBlog applies a partial update. Omitted or empty fields keep their
// stored value.
func (s *blogService) UpdateBlog(ctx context.Context, id int, req models.UpdateBlogRequest) (*models.Blog, error) {
	var blog *models.Blog
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		blog, err = tx.Blogs.LockByID(ctx, id)
		if repositories.IsNotFound(err) {
			return models.ErrBlogNotFound
		}
		if err != nil {
			return err
		}

		if req.Title != nil && *req.Title != "" {
			blog.Title = *req.Title
		}
		if req.Content != nil && *req.Content != "" {
			blog.Content = *req.Content
		}
		if req.Tags != nil {
			blog.Tags = normalizeTags(*req.Tags)
		}
		blog.UpdatedAt = time.Now()
		return tx.Blogs.Update(ctx, blog)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return blog, nil
}

func (s *blogService) DeleteBlog(ctx context.Context, id int) error {
	deleted, err := s.store.Blogs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.ErrBlogNotFound
	}
	s.invalidateStats(ctx)
	return nil
}

// GetStats serves the dashboard from cache when fresh and otherwise runs
// its queries concurrently.
func (s *blogService) GetStats(ctx context.Context) (*models.BlogStats, error) {
	gen := s.statsGen.Load()
	var cached models.BlogStats
	if ok, err := s.cache.Get(ctx, cache.KeyBlogStats(), &cached); err != nil {
		Logger.Log.WithError(err).Warn("read stats cache")
	} else if ok {
		return &cached, nil
	}

	var (
		totals models.BlogTotals
		stats  models.BlogStats
	)
	g, gctx := errgroup.WithContext(ctx)
	count := func(table string, dest *int64) {
		g.Go(func() error {
			n, err := s.store.Blogs.Totals(gctx, table)
			*dest = n
			return err
		})
	}
	count("blog", &totals.Posts)
	count("likes", &totals.Likes)
	count("comments", &totals.Comments)
	count("blog_views", &totals.Views)
	g.Go(func() (err error) {
		stats.TopPerformingPost, err = s.store.Blogs.TopByViews(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentPosts, err = s.store.Blogs.Recent(gctx, recentPostsLimit)
		return err
	})
	g.Go(func() (err error) {
		stats.AuthorStats, err = s.store.Blogs.AuthorStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TagStats, err = s.store.Blogs.TagStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.TotalPosts = totals.Posts
	stats.TotalLikes = totals.Likes
	stats.TotalComments = totals.Comments
	stats.TotalViews = totals.Views
	stats.AverageViewsPerPost = perPost(totals.Views, totals.Posts)
	stats.AverageLikesPerPost = perPost(totals.Likes, totals.Posts)
	stats.AverageCommentsPerPost = perPost(totals.Comments, totals.Posts)

	// Another instance sharing redis can still race this; its write lags by
	// at most one TTL.
	if s.statsGen.Load() == gen {
		if err := s.cache.Set(ctx, cache.KeyBlogStats(), stats, s.statsTTL); err != nil {
			Logger.Log.WithError(err).Warn("write stats cache")
		}
	}
	return &stats, nil
}

func (s *blogService) invalidateStats(ctx context.Context) {
	s.statsGen.Add(1)
	if err := s.cache.Delete(ctx, cache.KeyBlogStats()); err != nil {
		Logger.Log.WithError(err).Warn("invalidate stats cache")
	}
}

func perPost(total, posts int64) int64 {
	if posts == 0 {
		return 0
	}
	return int64(math.Round(float64(total) / float64(posts)))
}

// normalizeTags drops blank tags and never returns nil, so the column holds
// an empty array rather than NULL.
func normalizeTags(tags []string) pq.StringArray {
	out := pq.StringArray{}
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}
