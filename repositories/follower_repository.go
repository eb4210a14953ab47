package repositories

import (
	"context"

	"portfolio-api/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type FollowerRepository interface {
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	Create(ctx context.Context, follow *models.Follower) error
	Delete(ctx context.Context, followerID, followingID string) (bool, error)
	// Following lists the users userID follows.
	Following(ctx context.Context, userID string, page models.PageParams) ([]models.FollowDetail, int64, error)
	// Followers lists the users following userID.
	Followers(ctx context.Context, userID string, page models.PageParams) ([]models.FollowDetail, int64, error)
}

type followRow struct {
	models.Follower
	personRow
}

type followerRepository struct {
	db *gorm.DB
}

func NewFollowerRepository(db *gorm.DB) FollowerRepository {
	return &followerRepository{db: db}
}

func (r *followerRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	return exists(ctx, r.db, &models.Follower{}, "follower_id = ? AND following_id = ?", followerID, followingID)
}

func (r *followerRepository) Create(ctx context.Context, follow *models.Follower) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(follow).Error, "create follow")
}

func (r *followerRepository) Delete(ctx context.Context, followerID, followingID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follower{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "delete follow")
	}
	return res.RowsAffected > 0, nil
}

// edges lists follow rows where column equals userID, joined with the user
// on the other side of the edge.
func (r *followerRepository) edges(ctx context.Context, column, otherColumn, userID string, page models.PageParams) ([]models.FollowDetail, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Follower{}).Where(column+" = ?", userID).Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "count follows")
	}

	userJoin, profileJoin := personJoins("followers." + otherColumn)
	var rows []followRow
	err = r.db.WithContext(ctx).
		Table("followers").
		Select("followers.id, followers.follower_id, followers.following_id, followers.created_at, " + personColumns).
		Joins(userJoin).
		Joins(profileJoin).
		Where("followers."+column+" = ?", userID).
		Order("followers.created_at desc, followers.id desc").
		Scopes(paginate(page.Page, page.Limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list follows")
	}

	out := make([]models.FollowDetail, 0, len(rows))
	for _, row := range rows {
		d := models.FollowDetail{Follower: row.Follower}
		d.User, d.UserProfile = row.summaries()
		out = append(out, d)
	}
	return out, total, nil
}

func (r *followerRepository) Following(ctx context.Context, userID string, page models.PageParams) ([]models.FollowDetail, int64, error) {
	return r.edges(ctx, "follower_id", "following_id", userID, page)
}

func (r *followerRepository) Followers(ctx context.Context, userID string, page models.PageParams) ([]models.FollowDetail, int64, error) {
	return r.edges(ctx, "following_id", "follower_id", userID, page)
}
