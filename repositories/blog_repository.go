package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio-api/models"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlogRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
	GetByID(ctx context.Context, id int) (*models.Blog, error)
	LockByID(ctx context.Context, id int) (*models.Blog, error)
	GetDetail(ctx context.Context, id int) (*models.BlogDetail, error)
	GetList(ctx context.Context, params models.BlogListParams) ([]models.BlogDetail, int64, error)
	Create(ctx context.Context, blog *models.Blog) error
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id int) (bool, error)

	Totals(ctx context.Context, table string) (int64, error)
	TopByViews(ctx context.Context) (*models.BlogDetail, error)
	Recent(ctx context.Context, n int) ([]models.BlogDetail, error)
	AuthorStats(ctx context.Context) ([]models.AuthorStat, error)
	TagStats(ctx context.Context) ([]models.TagStat, error)
}

// Per-blog counts are joined as pre-aggregated subqueries so a page of
// blogs costs one query regardless of its size.
const (
	likeCountsJoin    = "LEFT JOIN (SELECT blog_id, COUNT(*) AS cnt FROM likes GROUP BY blog_id) lc ON lc.blog_id = blog.id"
	commentCountsJoin = "LEFT JOIN (SELECT blog_id, COUNT(*) AS cnt FROM comments GROUP BY blog_id) cc ON cc.blog_id = blog.id"
	viewCountsJoin    = "LEFT JOIN (SELECT blog_id, COUNT(*) AS cnt FROM blog_views GROUP BY blog_id) vc ON vc.blog_id = blog.id"
	authorJoin        = `LEFT JOIN "user" u ON u.id = blog.author_id`
	authorProfileJoin = "LEFT JOIN user_profiles p ON p.user_id = blog.author_id"

	blogDetailColumns = `blog.id, blog.tags, blog.title, blog.content, blog.author_id, blog.created_at, blog.updated_at,
		u.id AS author_ref, u.email AS author_email, u.name AS author_name, u.image AS author_image,
		p.id AS profile_id, p.first_name AS profile_first_name, p.last_name AS profile_last_name, p.avatar AS profile_avatar,
		COALESCE(lc.cnt, 0) AS likes, COALESCE(cc.cnt, 0) AS comments, COALESCE(vc.cnt, 0) AS views`
)

var blogSortColumns = map[string]string{
	"createdAt": "blog.created_at",
	"updatedAt": "blog.updated_at",
	"title":     "blog.title",
}

// countTables lists the tables Totals may count.
var countTables = map[string]bool{
	"blog":       true,
	"likes":      true,
	"comments":   true,
	"blog_views": true,
}

type blogRow struct {
	ID               int
	Tags             pq.StringArray
	Title            string
	Content          string
	AuthorID         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	AuthorRef        *string
	AuthorEmail      *string
	AuthorName       *string
	AuthorImage      *string
	ProfileID        *int
	ProfileFirstName *string
	ProfileLastName  *string
	ProfileAvatar    *string
	Likes            int64
	Comments         int64
	Views            int64
}

func (row blogRow) detail() models.BlogDetail {
	d := models.BlogDetail{
		Blog: models.Blog{
			ID:        row.ID,
			Tags:      row.Tags,
			Title:     row.Title,
			Content:   row.Content,
			AuthorID:  row.AuthorID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		Likes:    row.Likes,
		Comments: row.Comments,
		Views:    row.Views,
	}
	if d.Tags == nil {
		d.Tags = pq.StringArray{}
	}
	d.Author = userSummary(row.AuthorRef, row.AuthorEmail, row.AuthorName, row.AuthorImage)
	d.AuthorProfile = profileSummary(row.ProfileID, row.ProfileFirstName, row.ProfileLastName, row.ProfileAvatar)
	return d
}

func userSummary(id, email, name, image *string) *models.UserSummary {
	if id == nil {
		return nil
	}
	s := &models.UserSummary{ID: *id, Image: image}
	if email != nil {
		s.Email = *email
	}
	if name != nil {
		s.Name = *name
	}
	return s
}

func profileSummary(id *int, first, last, avatar *string) *models.ProfileSummary {
	if id == nil {
		return nil
	}
	return &models.ProfileSummary{FirstName: first, LastName: last, Avatar: avatar}
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Exists(ctx context.Context, id int) (bool, error) {
	return exists(ctx, r.db, &models.Blog{}, "id = ?", id)
}

func (r *blogRepository) GetByID(ctx context.Context, id int) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).First(&blog, id).Error; err != nil {
		return nil, errors.Wrapf(err, "get blog %d", id)
	}
	return &blog, nil
}

// LockByID loads the blog with a row lock held until the surrounding
// transaction ends.
func (r *blogRepository) LockByID(ctx context.Context, id int) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&blog, id).Error
	if err != nil {
		return nil, errors.Wrapf(err, "lock blog %d", id)
	}
	return &blog, nil
}

func (r *blogRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("blog").
		Select(blogDetailColumns).
		Joins(authorJoin).
		Joins(authorProfileJoin).
		Joins(likeCountsJoin).
		Joins(commentCountsJoin).
		Joins(viewCountsJoin)
}

func (r *blogRepository) GetDetail(ctx context.Context, id int) (*models.BlogDetail, error) {
	var rows []blogRow
	if err := r.detailQuery(ctx).Where("blog.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "get blog detail %d", id)
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(gorm.ErrRecordNotFound, "get blog detail %d", id)
	}
	d := rows[0].detail()
	return &d, nil
}

func applyBlogFilters(query *gorm.DB, params models.BlogListParams) *gorm.DB {
	if params.Tag != "" {
		query = query.Where("array_to_string(blog.tags, ',') ILIKE ?", containsPattern(params.Tag))
	}
	if params.Search != "" {
		pattern := containsPattern(params.Search)
		query = query.Where("(blog.title ILIKE ? OR blog.content ILIKE ?)", pattern, pattern)
	}
	if params.Author != "" {
		query = query.Where("blog.author_id = ?", params.Author)
	}
	if params.Category != "" {
		query = query.Where(`EXISTS (SELECT 1 FROM blog_categories bc
			JOIN categories c ON c.id = bc.category_id
			WHERE bc.blog_id = blog.id AND c.slug = ?)`, params.Category)
	}
	return query
}

func blogOrder(params models.BlogListParams) string {
	column, ok := blogSortColumns[params.SortBy]
	if !ok {
		column = blogSortColumns["createdAt"]
	}
	direction := "desc"
	if strings.EqualFold(params.SortOrder, "asc") {
		direction = "asc"
	}
	return fmt.Sprintf("%s %s, blog.id %s", column, direction, direction)
}

func (r *blogRepository) GetList(ctx context.Context, params models.BlogListParams) ([]models.BlogDetail, int64, error) {
	var total int64
	err := applyBlogFilters(r.db.WithContext(ctx).Table("blog"), params).Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "count blogs")
	}

	var rows []blogRow
	err = applyBlogFilters(r.detailQuery(ctx), params).
		Order(blogOrder(params)).
		Scopes(paginate(params.Page, params.Limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list blogs")
	}

	blogs := make([]models.BlogDetail, 0, len(rows))
	for _, row := range rows {
		blogs = append(blogs, row.detail())
	}
	return blogs, total, nil
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(blog).Error, "create blog")
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	err := r.db.WithContext(ctx).Model(&models.Blog{}).
		Where("id = ?", blog.ID).
		Updates(map[string]interface{}{
			"title":      blog.Title,
			"content":    blog.Content,
			"tags":       blog.Tags,
			"updated_at": blog.UpdatedAt,
		}).Error
	return errors.Wrapf(err, "update blog %d", blog.ID)
}

func (r *blogRepository) Delete(ctx context.Context, id int) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Blog{}, id)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "delete blog %d", id)
	}
	return res.RowsAffected > 0, nil
}

func (r *blogRepository) Totals(ctx context.Context, table string) (int64, error) {
	if !countTables[table] {
		return 0, errors.Errorf("count of unknown table %q", table)
	}
	var n int64
	if err := r.db.WithContext(ctx).Table(table).Count(&n).Error; err != nil {
		return 0, errors.Wrapf(err, "count %s", table)
	}
	return n, nil
}

func (r *blogRepository) TopByViews(ctx context.Context) (*models.BlogDetail, error) {
	var rows []blogRow
	err := r.detailQuery(ctx).
		Order("views desc, blog.created_at desc").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "top blog by views")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	d := rows[0].detail()
	return &d, nil
}

func (r *blogRepository) Recent(ctx context.Context, n int) ([]models.BlogDetail, error) {
	var rows []blogRow
	err := r.detailQuery(ctx).
		Order("blog.created_at desc, blog.id desc").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "recent blogs")
	}
	blogs := make([]models.BlogDetail, 0, len(rows))
	for _, row := range rows {
		blogs = append(blogs, row.detail())
	}
	return blogs, nil
}

func (r *blogRepository) AuthorStats(ctx context.Context) ([]models.AuthorStat, error) {
	stats := []models.AuthorStat{}
	query := `
		SELECT
			blog.author_id AS author_id,
			u.email AS author_email,
			p.first_name AS first_name,
			p.last_name AS last_name,
			p.avatar AS avatar,
			COUNT(blog.id) AS post_count,
			COALESCE(SUM(vc.cnt), 0) AS total_views,
			COALESCE(SUM(lc.cnt), 0) AS total_likes
		FROM blog
		` + authorJoin + `
		` + authorProfileJoin + `
		` + viewCountsJoin + `
		` + likeCountsJoin + `
		GROUP BY blog.author_id, u.email, p.first_name, p.last_name, p.avatar
		ORDER BY total_views DESC, post_count DESC
	`
	if err := r.db.WithContext(ctx).Raw(query).Scan(&stats).Error; err != nil {
		return nil, errors.Wrap(err, "author stats")
	}
	return stats, nil
}

func (r *blogRepository) TagStats(ctx context.Context) ([]models.TagStat, error) {
	stats := []models.TagStat{}
	query := `
		SELECT tag, COUNT(*) AS count
		FROM blog, unnest(blog.tags) AS tag
		GROUP BY tag
		ORDER BY count DESC, tag ASC
	`
	if err := r.db.WithContext(ctx).Raw(query).Scan(&stats).Error; err != nil {
		return nil, errors.Wrap(err, "tag stats")
	}
	return stats, nil
}
