package services

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"portfolio-api/cache"
	"portfolio-api/models"
	"portfolio-api/repositories"
	"portfolio-api/testutil"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu  sync.Mutex
	got []models.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, *n)
	return nil
}

func (r *recordingNotifier) sent() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.got...)
}

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	store    *repositories.Store
	notifier *recordingNotifier

	blogs         BlogService
	revisions     RevisionService
	categories    CategoryService
	interactions  InteractionService
	users         UserService
	notifications NotificationService
	reports       *reportService
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupSuite() {
	s.ctx = context.Background()
	s.db = testutil.Postgres(s.T())
	s.store = repositories.NewStore(s.db)
}

func (s *ServiceSuite) SetupTest() {
	testutil.Reset(s.T(), s.db)
	s.notifier = &recordingNotifier{}
	c := cache.NewMemory(time.Minute, time.Minute)

	s.blogs = NewBlogService(s.store, c, time.Minute)
	s.revisions = NewRevisionService(s.store)
	s.categories = NewCategoryService(s.store, c, time.Minute)
	s.interactions = NewInteractionService(s.store, s.notifier)
	s.users = NewUserService(s.store, s.notifier)
	s.notifications = NewNotificationService(s.store)
	s.reports = NewReportService(s.store).(*reportService)
}

func (s *ServiceSuite) requireNotFound(err error, message string) {
	var nf models.ErrorNotFound
	s.Require().ErrorAs(err, &nf)
	s.Equal(message, nf.Message)
}

func (s *ServiceSuite) requireConflict(err error) {
	var conflict models.ErrorConflict
	s.Require().ErrorAs(err, &conflict)
}

func (s *ServiceSuite) requireValidation(err error, message string) {
	var validation models.ErrorValidation
	s.Require().ErrorAs(err, &validation)
	s.Equal(message, validation.Message)
}

func (s *ServiceSuite) TestCreateBlogUnknownAuthor() {
	_, err := s.blogs.CreateBlog(s.ctx, models.CreateBlogRequest{Title: "T", Content: "C", AuthorID: "ghost"})
	s.requireNotFound(err, "Author not found")
}

func (s *ServiceSuite) TestBlogLifecycle() {
	author := testutil.SeedUser(s.T(), s.db, "author")
	reader := testutil.SeedUser(s.T(), s.db, "reader")

	blog, err := s.blogs.CreateBlog(s.ctx, models.CreateBlogRequest{
		Title: "Go tips", Content: "Use interfaces", Tags: []string{"go", " ", "tips"}, AuthorID: author.ID,
	})
	s.Require().NoError(err)
	s.Equal([]string{"go", "tips"}, []string(blog.Tags))

	_, err = s.interactions.Like(s.ctx, blog.ID, reader.ID)
	s.Require().NoError(err)
	_, err = s.interactions.AddComment(s.ctx, blog.ID, models.CreateCommentRequest{Content: "nice", UserID: reader.ID})
	s.Require().NoError(err)
	_, err = s.interactions.RecordView(s.ctx, blog.ID, models.CreateViewRequest{})
	s.Require().NoError(err)

	detail, err := s.blogs.GetBlog(s.ctx, blog.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), detail.Likes)
	s.Equal(int64(1), detail.Comments)
	s.Equal(int64(1), detail.Views)
	s.Require().NotNil(detail.Author)
	s.Equal(author.ID, detail.Author.ID)

	title := "Go tips, revised"
	empty := ""
	updated, err := s.blogs.UpdateBlog(s.ctx, blog.ID, models.UpdateBlogRequest{Title: &title, Content: &empty})
	s.Require().NoError(err)
	s.Equal(title, updated.Title)
	s.Equal("Use interfaces", updated.Content)
	s.Equal([]string{"go", "tips"}, []string(updated.Tags))

	s.Require().NoError(s.blogs.DeleteBlog(s.ctx, blog.ID))
	s.Equal(models.ErrBlogNotFound, s.blogs.DeleteBlog(s.ctx, blog.ID))

	var comments int64
	s.Require().NoError(s.db.Model(&models.Comment{}).Where("blog_id = ?", blog.ID).Count(&comments).Error)
	s.Zero(comments)

	_, err = s.blogs.GetBlog(s.ctx, blog.ID)
	s.Equal(models.ErrBlogNotFound, err)
}

func (s *ServiceSuite) TestGetBlogsFiltersAndPaginates() {
	alice := testutil.SeedUser(s.T(), s.db, "alice")
	bob := testutil.SeedUser(s.T(), s.db, "bob")
	testutil.SeedBlog(s.T(), s.db, alice.ID, "Postgres 100% tuning", "db")
	testutil.SeedBlog(s.T(), s.db, alice.ID, "Gin routing", "go")
	testutil.SeedBlog(s.T(), s.db, bob.ID, "Go channels", "go")

	blogs, page, err := s.blogs.GetBlogs(s.ctx, models.BlogListParams{Tag: "go", PageParams: models.PageParams{Page: 1, Limit: 1}})
	s.Require().NoError(err)
	s.Len(blogs, 1)
	s.Equal(int64(2), page.Total)
	s.Equal(2, page.TotalPages)

	blogs, _, err = s.blogs.GetBlogs(s.ctx, models.BlogListParams{Search: "100%"})
	s.Require().NoError(err)
	s.Require().Len(blogs, 1)
	s.Equal("Postgres 100% tuning", blogs[0].Title)

	blogs, _, err = s.blogs.GetBlogs(s.ctx, models.BlogListParams{Author: bob.ID})
	s.Require().NoError(err)
	s.Require().Len(blogs, 1)
	s.Equal("Go channels", blogs[0].Title)
}

func (s *ServiceSuite) TestGetBlogsSecondPage() {
	author := testutil.SeedUser(s.T(), s.db, "author")
	for i := 1; i <= 12; i++ {
		testutil.SeedBlog(s.T(), s.db, author.ID, "Post "+strconv.Itoa(i))
	}

	first, _, err := s.blogs.GetBlogs(s.ctx, models.BlogListParams{PageParams: models.PageParams{Page: 1, Limit: 5}})
	s.Require().NoError(err)
	second, page, err := s.blogs.GetBlogs(s.ctx, models.BlogListParams{PageParams: models.PageParams{Page: 2, Limit: 5}})
	s.Require().NoError(err)

	s.Len(second, 5)
	s.Equal(models.Pagination{Page: 2, Limit: 5, Total: 12, TotalPages: 3}, page)
	seen := map[int]bool{}
	for _, b := range first {
		seen[b.ID] = true
	}
	for _, b := range second {
		s.False(seen[b.ID], "blog %d on both pages", b.ID)
	}

	last, _, err := s.blogs.GetBlogs(s.ctx, models.BlogListParams{PageParams: models.PageParams{Page: 3, Limit: 5}})
	s.Require().NoError(err)
	s.Len(last, 2)
}

func (s *ServiceSuite) TestStatsAreCachedUntilBlogsChange() {
	author := testutil.SeedUser(s.T(), s.db, "author")
	reader := testutil.SeedUser(s.T(), s.db, "reader")
	first := testutil.SeedBlog(s.T(), s.db, author.ID, "First", "go")
	testutil.SeedBlog(s.T(), s.db, author.ID, "Second", "go", "db")

	for i := 0; i < 3; i++ {
		_, err := s.interactions.RecordView(s.ctx, first.ID, models.CreateViewRequest{})
		s.Require().NoError(err)
	}
	_, err := s.interactions.Like(s.ctx, first.ID, reader.ID)
	s.Require().NoError(err)

	stats, err := s.blogs.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), stats.TotalPosts)
	s.Equal(int64(3), stats.TotalViews)
	s.Equal(int64(2), stats.AverageViewsPerPost)
	s.Equal(int64(1), stats.AverageLikesPerPost)
	s.Require().NotNil(stats.TopPerformingPost)
	s.Equal(first.ID, stats.TopPerformingPost.ID)
	s.Equal(models.TagStat{Tag: "go", Count: 2}, stats.TagStats[0])

	testutil.SeedBlog(s.T(), s.db, author.ID, "Written behind the cache")
	cached, err := s.blogs.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), cached.TotalPosts)

	_, err = s.blogs.CreateBlog(s.ctx, models.CreateBlogRequest{Title: "Fourth", Content: "C", AuthorID: author.ID})
	s.Require().NoError(err)
	fresh, err := s.blogs.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(4), fresh.TotalPosts)
}

// missHookCache runs onMiss after every cache miss.
type missHookCache struct {
	cache.Cache
	onMiss func()
}

func (c *missHookCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	ok, err := c.Cache.Get(ctx, key, dest)
	if !ok && err == nil && c.onMiss != nil {
		c.onMiss()
	}
	return ok, err
}

func (s *ServiceSuite) TestStatsComputedAcrossInvalidationAreNotCached() {
	author := testutil.SeedUser(s.T(), s.db, "author")
	testutil.SeedBlog(s.T(), s.db, author.ID, "First")

	c := &missHookCache{Cache: cache.NewMemory(time.Minute, time.Minute)}
	blogs := NewBlogService(s.store, c, time.Minute)
	c.onMiss = func() {
		c.onMiss = nil
		s.Require().NoError(blogs.DeleteBlog(s.ctx, testutil.SeedBlog(s.T(), s.db, author.ID, "Gone").ID))
	}

	_, err := blogs.GetStats(s.ctx)
	s.Require().NoError(err)

	var cached models.BlogStats
	ok, err := c.Cache.Get(s.ctx, cache.KeyBlogStats(), &cached)
	s.Require().NoError(err)
	s.False(ok)

	_, err = blogs.GetStats(s.ctx)
	s.Require().NoError(err)
	ok, err = c.Cache.Get(s.ctx, cache.KeyBlogStats(), &cached)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(int64(1), cached.TotalPosts)
}

func (s *ServiceSuite) TestRevisionsAreNumberedPerBlog() {
	author := testutil.SeedUser(s.T(), s.db, "author")
	blog := testutil.SeedBlog(s.T(), s.db, author.ID, "Draft")
	other := testutil.SeedBlog(s.T(), s.db, author.ID, "Other")

	first, err := s.revisions.CreateRevision(s.ctx, blog.ID, models.CreateRevisionRequest{Title: "v1", Content: "one"})
	s.Require().NoError(err)
	second, err := s.revisions.CreateRevision(s.ctx, blog.ID, models.CreateRevisionRequest{Title: "v2", Content: "two"})
	s.Require().NoError(err)
	otherFirst, err := s.revisions.CreateRevision(s.ctx, other.ID, models.CreateRevisionRequest{Title: "v1", Content: "one"})
	s.Require().NoError(err)

	s.Equal(1, first.Version)
	s.Equal(2, second.Version)
	s.Equal(1, otherFirst.Version)

	got, err := s.revisions.GetRevision(s.ctx, blog.ID, 2)
	s.Require().NoError(err)
	s.Equal("v2", got.Title)

	_, err = s.revisions.GetRevision(s.ctx, blog.ID, 3)
	s.Equal(models.ErrRevisionNotFound, err)

	_, err = s.revisions.CreateRevision(s.ctx, 9999, models.CreateRevisionRequest{Title: "x", Content: "y"})
	s.Equal(models.ErrBlogNotFound, err)

	list, page, err := s.revisions.GetRevisions(s.ctx, blog.ID, models.PageParams{})
	s.Require().NoError(err)
	s.Len(list, 2)
	s.Equal(int64(2), page.Total)
}

func (s *ServiceSuite) TestConcurrentRevisionsGetDistinctVersions() {
	author := testutil.SeedUser(s.T(), s.db, "author")
	blog := testutil.SeedBlog(s.T(), s.db, author.ID, "Busy")

	var wg sync.WaitGroup
	versions := make(chan int, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rev, err := s.revisions.CreateRevision(s.ctx, blog.ID, models.CreateRevisionRequest{Title: "t", Content: "c"})
			if err == nil {
				versions <- rev.Version
			}
		}()
	}
	wg.Wait()
	close(versions)

	seen := map[int]bool{}
	for v := range versions {
		s.False(seen[v], "version %d issued twice", v)
		seen[v] = true
	}
	s.Len(seen, 5)
}

func (s *ServiceSuite) TestCategories() {
	author := testutil.SeedUser(s.T(), s.db, "author")
	blog := testutil.SeedBlog(s.T(), s.db, author.ID, "Post")

	tech, err := s.categories.CreateCategory(s.ctx, models.CreateCategoryRequest{Name: "Tech", Slug: "tech"})
	s.Require().NoError(err)
	_, err = s.categories.CreateCategory(s.ctx, models.CreateCategoryRequest{Name: "Other", Slug: "tech"})
	s.Equal(models.ErrCategoryExists, err)
	life, err := s.categories.CreateCategory(s.ctx, models.CreateCategoryRequest{Name: "Life", Slug: "life"})
	s.Require().NoError(err)

	bySlug, err := s.categories.GetCategory(s.ctx, "tech")
	s.Require().NoError(err)
	s.Equal(tech.ID, bySlug.ID)

	same := "Tech"
	_, err = s.categories.UpdateCategory(s.ctx, tech.ID, models.UpdateCategoryRequest{Name: &same})
	s.Require().NoError(err)
	clash := "life"
	_, err = s.categories.UpdateCategory(s.ctx, tech.ID, models.UpdateCategoryRequest{Slug: &clash})
	s.Equal(models.ErrCategoryExists, err)

	renamed := "technology"
	_, err = s.categories.UpdateCategory(s.ctx, tech.ID, models.UpdateCategoryRequest{Slug: &renamed})
	s.Require().NoError(err)
	_, err = s.categories.GetCategory(s.ctx, "tech")
	s.Equal(models.ErrCategoryNotFound, err)

	_, err = s.categories.AssignCategory(s.ctx, blog.ID, tech.ID)
	s.Require().NoError(err)
	_, err = s.categories.AssignCategory(s.ctx, blog.ID, tech.ID)
	s.requireConflict(err)
	_, err = s.categories.AssignCategory(s.ctx, blog.ID, 9999)
	s.Equal(models.ErrCategoryNotFound, err)

	links, err := s.categories.GetBlogCategories(s.ctx, blog.ID)
	s.Require().NoError(err)
	s.Require().Len(links, 1)
	s.Require().NotNil(links[0].Category)
	s.Equal("technology", links[0].Category.Slug)

	s.Require().NoError(s.categories.DeleteCategory(s.ctx, life.ID))
	s.Equal(models.ErrCategoryNotFound, s.categories.DeleteCategory(s.ctx, life.ID))
	s.requireNotFound(s.categories.UnassignCategory(s.ctx, blog.ID, life.ID), "Category not assigned to this blog")
}

func (s *ServiceSuite) TestLikesNotifyTheAuthor() {
	author := testutil.SeedUser(s.T(), s.db, "author")
	reader := testutil.SeedUser(s.T(), s.db, "reader")
	blog := testutil.SeedBlog(s.T(), s.db, author.ID, "Post")

	_, err := s.interactions.Like(s.ctx, blog.ID, reader.ID)
	s.Require().NoError(err)
	_, err = s.interactions.Like(s.ctx, blog.ID, reader.ID)
	s.requireConflict(err)
	_, err = s.interactions.Like(s.ctx, blog.ID, author.ID)
	s.Require().NoError(err)

	sent := s.notifier.sent()
	s.Require().Len(sent, 1)
	s.Equal(author.ID, sent[0].UserID)
	s.Equal(models.NotificationLike, sent[0].Type)

	s.Require().NoError(s.interactions.Unlike(s.ctx, blog.ID, reader.ID))
	s.requireNotFound(s.interactions.Unlike(s.ctx, blog.ID, reader.ID), "Blog not liked by this user")

	_, err = s.interactions.Like(s.ctx, blog.ID, "ghost")
	s.requireNotFound(err, "User not found")
}

func (s *ServiceSuite) TestBookmarks() {
	author := testutil.SeedUser(s.T(), s.db, "author")
	reader := testutil.SeedUser(s.T(), s.db, "reader")
	blog := testutil.SeedBlog(s.T(), s.db, author.ID, "Post")

	_, err := s.interactions.Bookmark(s.ctx, blog.ID, reader.ID)
	s.Require().NoError(err)
	_, err = s.interactions.Bookmark(s.ctx, blog.ID, reader.ID)
	s.requireConflict(err)

	entries, page, err := s.users.GetBookmarks(s.ctx, reader.ID, models.PageParams{})
	s.Require().NoError(err)
	s.Equal(int64(1), page.Total)
	s.Require().NotNil(entries[0].Blog)
	s.Equal("Post", entries[0].Blog.Title)

	s.Require().NoError(s.interactions.Unbookmark(s.ctx, blog.ID, reader.ID))
	s.requireNotFound(s.interactions.Unbookmark(s.ctx, blog.ID, reader.ID), "Blog not bookmarked by this user")
}

func (s *ServiceSuite) TestHistoryIsIdempotent() {
	author := testutil.SeedUser(s.T(), s.db, "author")
	reader := testutil.SeedUser(s.T(), s.db, "reader")
	blog := testutil.SeedBlog(s.T(), s.db, author.ID, "Post")

	first, err := s.interactions.AddHistory(s.ctx, blog.ID, reader.ID)
	s.Require().NoError(err)
	second, err := s.interactions.AddHistory(s.ctx, blog.ID, reader.ID)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)

	var stored []models.History
	s.Require().NoError(s.db.Where("user_id = ? AND blog_id = ?", reader.ID, blog.ID).Find(&stored).Error)
	s.Require().Len(stored, 1)
	s.Equal(first.ID, stored[0].ID)
	s.WithinDuration(wallClock(second.CreatedAt), stored[0].CreatedAt, time.Microsecond)
	s.True(stored[0].CreatedAt.After(wallClock(first.CreatedAt)))

	entries, page, err := s.users.GetHistory(s.ctx, reader.ID, models.PageParams{})
	s.Require().NoError(err)
	s.Equal(int64(1), page.Total)
	s.Require().Len(entries, 1)

	s.Require().NoError(s.interactions.DeleteHistory(s.ctx, entries[0].ID))
	s.Equal(models.ErrHistoryNotFound, s.interactions.DeleteHistory(s.ctx, entries[0].ID))

	_, err = s.interactions.AddHistory(s.ctx, blog.ID, "")
	s.requireValidation(err, "userId is required")
}

func (s *ServiceSuite) TestCommentsNotifyAndUpdate() {
	author := testutil.SeedUser(s.T(), s.db, "author")
	reader := testutil.SeedUser(s.T(), s.db, "reader")
	blog := testutil.SeedBlog(s.T(), s.db, author.ID, "Post")

	comment, err := s.interactions.AddComment(s.ctx, blog.ID, models.CreateCommentRequest{Content: "  hello  ", UserID: reader.ID})
	s.Require().NoError(err)
	s.Equal("hello", comment.Content)

	sent := s.notifier.sent()
	s.Require().Len(sent, 1)
	s.Equal(models.NotificationComment, sent[0].Type)
	s.Require().NotNil(sent[0].RelatedID)
	s.Equal(blog.ID, *sent[0].RelatedID)

	updated, err := s.interactions.UpdateComment(s.ctx, comment.ID, models.UpdateCommentRequest{Content: "edited"})
	s.Require().NoError(err)
	s.Equal("edited", updated.Content)

	comments, _, err := s.interactions.GetComments(s.ctx, blog.ID, models.PageParams{})
	s.Require().NoError(err)
	s.Require().Len(comments, 1)
	s.Equal("edited", comments[0].Content)
	s.Require().NotNil(comments[0].User)
	s.Equal(reader.ID, comments[0].User.ID)

	s.Require().NoError(s.interactions.DeleteComment(s.ctx, comment.ID))
	s.Equal(models.ErrCommentNotFound, s.interactions.DeleteComment(s.ctx, comment.ID))
}

func (s *ServiceSuite) TestFollow() {
	alice := testutil.SeedUser(s.T(), s.db, "alice")
	bob := testutil.SeedUser(s.T(), s.db, "bob")

	_, err := s.users.Follow(s.ctx, "nobody", "nobody")
	s.requireValidation(err, "Cannot follow yourself")

	_, err = s.users.Follow(s.ctx, "ghost", alice.ID)
	s.requireNotFound(err, "User to follow not found")
	_, err = s.users.Follow(s.ctx, bob.ID, "ghost")
	s.requireNotFound(err, "Follower not found")

	_, err = s.users.Follow(s.ctx, bob.ID, alice.ID)
	s.Require().NoError(err)
	_, err = s.users.Follow(s.ctx, bob.ID, alice.ID)
	s.requireConflict(err)

	sent := s.notifier.sent()
	s.Require().Len(sent, 1)
	s.Equal(bob.ID, sent[0].UserID)
	s.Equal(models.NotificationFollow, sent[0].Type)

	following, _, err := s.users.GetFollowing(s.ctx, alice.ID, models.PageParams{})
	s.Require().NoError(err)
	s.Require().Len(following, 1)
	s.Equal(bob.ID, following[0].User.ID)

	followers, _, err := s.users.GetFollowers(s.ctx, bob.ID, models.PageParams{})
	s.Require().NoError(err)
	s.Require().Len(followers, 1)
	s.Equal(alice.ID, followers[0].User.ID)

	s.Require().NoError(s.users.Unfollow(s.ctx, bob.ID, alice.ID))
	s.requireNotFound(s.users.Unfollow(s.ctx, bob.ID, alice.ID), "Not following this user")
}

func (s *ServiceSuite) TestNotifications() {
	user := testutil.SeedUser(s.T(), s.db, "user")
	for _, title := range []string{"one", "two"} {
		s.Require().NoError(s.store.Notifications.Create(s.ctx, &models.Notification{
			UserID: user.ID, Type: models.NotificationLike, Title: title, Message: title,
		}))
	}

	all, page, err := s.users.GetNotifications(s.ctx, user.ID, models.NotificationListParams{})
	s.Require().NoError(err)
	s.Equal(int64(2), page.Total)

	read, err := s.notifications.MarkRead(s.ctx, all[0].ID)
	s.Require().NoError(err)
	s.Equal(1, read.IsRead)

	unread, _, err := s.users.GetNotifications(s.ctx, user.ID, models.NotificationListParams{Unread: true})
	s.Require().NoError(err)
	s.Len(unread, 1)

	_, err = s.notifications.MarkRead(s.ctx, 9999)
	s.Equal(models.ErrNotificationNotFound, err)
	s.Require().NoError(s.notifications.DeleteNotification(s.ctx, all[0].ID))
	s.Equal(models.ErrNotificationNotFound, s.notifications.DeleteNotification(s.ctx, all[0].ID))
}

func (s *ServiceSuite) TestUpdateProfileCreatesThenPatches() {
	user := testutil.SeedUser(s.T(), s.db, "user")
	first, last := "Ada", "Lovelace"

	profile, err := s.users.UpdateProfile(s.ctx, user.ID, models.UpdateProfileRequest{FirstName: &first})
	s.Require().NoError(err)
	s.Equal("Ada", *profile.FirstName)

	profile, err = s.users.UpdateProfile(s.ctx, user.ID, models.UpdateProfileRequest{LastName: &last})
	s.Require().NoError(err)
	s.Require().NotNil(profile.FirstName)
	s.Equal("Ada", *profile.FirstName)
	s.Equal("Lovelace", *profile.LastName)

	_, err = s.users.UpdateProfile(s.ctx, "ghost", models.UpdateProfileRequest{FirstName: &first})
	s.requireNotFound(err, "User not found")
}

func (s *ServiceSuite) TestDeleteUserCascades() {
	author := testutil.SeedUser(s.T(), s.db, "author")
	other := testutil.SeedUser(s.T(), s.db, "other")
	blog := testutil.SeedBlog(s.T(), s.db, author.ID, "Post")
	otherBlog := testutil.SeedBlog(s.T(), s.db, other.ID, "Elsewhere")

	view := models.BlogView{BlogID: otherBlog.ID, UserID: &author.ID}
	for _, row := range []interface{}{
		&models.Comment{UserID: author.ID, BlogID: otherBlog.ID, Content: "hello"},
		&models.Like{UserID: author.ID, BlogID: otherBlog.ID},
		&models.Bookmark{UserID: author.ID, BlogID: otherBlog.ID},
		&models.Follower{FollowerID: author.ID, FollowingID: other.ID},
		&models.Follower{FollowerID: other.ID, FollowingID: author.ID},
		&view,
	} {
		s.Require().NoError(s.db.Create(row).Error)
	}

	s.Require().NoError(s.users.DeleteUser(s.ctx, author.ID))
	s.Equal(models.ErrUserNotFound, s.users.DeleteUser(s.ctx, author.ID))

	_, err := s.blogs.GetBlog(s.ctx, blog.ID)
	s.Equal(models.ErrBlogNotFound, err)

	for _, tc := range []struct {
		table, where string
	}{
		{"blog", "author_id = ?"},
		{"comments", "user_id = ?"},
		{"likes", "user_id = ?"},
		{"bookmarks", "user_id = ?"},
		{"followers", "follower_id = ? OR following_id = ?"},
		{"blog_views", "user_id = ?"},
	} {
		args := []interface{}{author.ID}
		if tc.table == "followers" {
			args = append(args, author.ID)
		}
		var n int64
		s.Require().NoError(s.db.Table(tc.table).Where(tc.where, args...).Count(&n).Error)
		s.Zero(n, tc.table)
	}

	var kept models.BlogView
	s.Require().NoError(s.db.First(&kept, view.ID).Error)
	s.Nil(kept.UserID)
	s.Equal(otherBlog.ID, kept.BlogID)
}

func (s *ServiceSuite) TestProvision() {
	user, err := s.users.Provision(s.ctx, models.ProvisionUserRequest{Email: " Admin@Example.com ", Password: "s3cret"})
	s.Require().NoError(err)
	s.Equal("admin@example.com", user.Email)
	s.Equal("admin", user.Name)

	var account models.Account
	s.Require().NoError(s.db.Where("user_id = ?", user.ID).First(&account).Error)
	s.Equal(CredentialProvider, account.ProviderID)
	s.Require().NotNil(account.Password)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(*account.Password), []byte("s3cret")))

	_, err = s.users.Provision(s.ctx, models.ProvisionUserRequest{Email: "ADMIN@example.com", Password: "x"})
	s.requireConflict(err)

	_, err = s.users.Provision(s.ctx, models.ProvisionUserRequest{Email: "a@b.c"})
	s.requireValidation(err, "Email and password are required")
}

func (s *ServiceSuite) TestReportLifecycle() {
	reporter := testutil.SeedUser(s.T(), s.db, "reporter")
	blog := testutil.SeedBlog(s.T(), s.db, reporter.ID, "Spam")
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.reports.now = func() time.Time { return fixed }

	_, err := s.reports.CreateReport(s.ctx, models.CreateReportRequest{
		ReporterID: reporter.ID, ContentType: "project", ContentID: "1", Reason: "spam",
	})
	s.requireValidation(err, `Invalid content type "project"`)

	_, err = s.reports.CreateReport(s.ctx, models.CreateReportRequest{
		ReporterID: reporter.ID, ContentType: "comment", ContentID: "abc", Reason: "spam",
	})
	s.requireValidation(err, "Invalid comment ID")

	_, err = s.reports.CreateReport(s.ctx, models.CreateReportRequest{
		ReporterID: reporter.ID, ContentType: "blog", ContentID: "9999", Reason: "spam",
	})
	s.Equal(models.ErrBlogNotFound, err)

	report, err := s.reports.CreateReport(s.ctx, models.CreateReportRequest{
		ReporterID: reporter.ID, ContentType: "Blog", ContentID: models.FlexibleID(strconv.Itoa(blog.ID)), Reason: "spam",
	})
	s.Require().NoError(err)
	s.Equal(models.ReportPending, report.Status)
	s.Equal(models.ContentBlog, report.ContentType)
	s.Nil(report.ResolvedAt)

	resolved, err := s.reports.UpdateStatus(s.ctx, report.ID, models.ReportResolved)
	s.Require().NoError(err)
	s.Equal(models.ReportResolved, resolved.Status)
	s.Require().NotNil(resolved.ResolvedAt)
	s.True(fixed.Equal(*resolved.ResolvedAt))

	_, err = s.reports.UpdateStatus(s.ctx, report.ID, models.ReportDismissed)
	s.requireConflict(err)
	_, err = s.reports.UpdateStatus(s.ctx, report.ID, models.ReportStatus("archived"))
	s.requireValidation(err, `Invalid status "archived"`)
	_, err = s.reports.UpdateStatus(s.ctx, 9999, models.ReportDismissed)
	s.Equal(models.ErrReportNotFound, err)

	pending, _, err := s.reports.GetReports(s.ctx, models.ReportListParams{Status: "pending"})
	s.Require().NoError(err)
	s.Empty(pending)
	done, _, err := s.reports.GetReports(s.ctx, models.ReportListParams{Status: "resolved"})
	s.Require().NoError(err)
	s.Len(done, 1)
}

// wallClock mirrors how a TIMESTAMP column keeps a local time: the wall
// clock survives and the zone is read back as UTC.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
