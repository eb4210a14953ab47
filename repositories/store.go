package repositories

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Store bundles every repository over a single connection, so a group of
// writes can share one transaction.
type Store struct {
	db *gorm.DB

	Users         UserRepository
	Blogs         BlogRepository
	Revisions     RevisionRepository
	Categories    CategoryRepository
	Comments      CommentRepository
	Likes         LikeRepository
	Bookmarks     BookmarkRepository
	Views         ViewRepository
	History       HistoryRepository
	Followers     FollowerRepository
	Notifications NotificationRepository
	Reports       ReportRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		Blogs:         NewBlogRepository(db),
		Revisions:     NewRevisionRepository(db),
		Categories:    NewCategoryRepository(db),
		Comments:      NewCommentRepository(db),
		Likes:         NewLikeRepository(db),
		Bookmarks:     NewBookmarkRepository(db),
		Views:         NewViewRepository(db),
		History:       NewHistoryRepository(db),
		Followers:     NewFollowerRepository(db),
		Notifications: NewNotificationRepository(db),
		Reports:       NewReportRepository(db),
	}
}

// Transaction runs fn with a Store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise; fn's
// error is returned unchanged.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique constraint violation. It
// requires gorm's TranslateError option.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsForeignKeyViolation reports whether a referenced row vanished between
// a check and a write.
func IsForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching raw as a literal
// substring.
func containsPattern(raw string) string {
	return "%" + likeEscaper.Replace(raw) + "%"
}

func paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}

func exists(ctx context.Context, db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(model).Where(query, args...).Count(&n).Error
	if err != nil {
		return false, errors.Wrap(err, "check existence")
	}
	return n > 0, nil
}
