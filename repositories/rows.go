package repositories

import (
	"fmt"
	"time"

	"portfolio-api/models"

	"github.com/lib/pq"
)

// personColumns selects a user (alias u) and the user's profile (alias p).
const personColumns = `u.id AS user_ref, u.email AS user_email, u.name AS user_name, u.image AS user_image,
	p.id AS profile_id, p.first_name AS profile_first_name, p.last_name AS profile_last_name, p.avatar AS profile_avatar`

// personJoins joins user u and profile p on the given user id column.
func personJoins(userColumn string) (string, string) {
	return fmt.Sprintf(`LEFT JOIN "user" u ON u.id = %s`, userColumn),
		fmt.Sprintf("LEFT JOIN user_profiles p ON p.user_id = %s", userColumn)
}

type personRow struct {
	UserRef          *string
	UserEmail        *string
	UserName         *string
	UserImage        *string
	ProfileID        *int
	ProfileFirstName *string
	ProfileLastName  *string
	ProfileAvatar    *string
}

func (p personRow) summaries() (*models.UserSummary, *models.ProfileSummary) {
	return userSummary(p.UserRef, p.UserEmail, p.UserName, p.UserImage),
		profileSummary(p.ProfileID, p.ProfileFirstName, p.ProfileLastName, p.ProfileAvatar)
}

// blogEntryColumns selects a user-to-blog row (alias e) with its blog (alias
// b) and the blog's author.
const blogEntryColumns = `e.id, e.user_id, e.blog_id, e.created_at,
	b.title AS blog_title, b.content AS blog_content, b.tags AS blog_tags, b.author_id AS blog_author_id,
	b.created_at AS blog_created_at, b.updated_at AS blog_updated_at, ` + personColumns

type blogEntryRow struct {
	ID            int
	UserID        string
	BlogID        int
	CreatedAt     time.Time
	BlogTitle     string
	BlogContent   string
	BlogTags      pq.StringArray
	BlogAuthorID  string
	BlogCreatedAt time.Time
	BlogUpdatedAt time.Time
	personRow
}

func (row blogEntryRow) detail() models.BlogEntryDetail {
	tags := row.BlogTags
	if tags == nil {
		tags = pq.StringArray{}
	}
	d := models.BlogEntryDetail{
		ID:        row.ID,
		UserID:    row.UserID,
		BlogID:    row.BlogID,
		CreatedAt: row.CreatedAt,
		Blog: &models.Blog{
			ID:        row.BlogID,
			Tags:      tags,
			Title:     row.BlogTitle,
			Content:   row.BlogContent,
			AuthorID:  row.BlogAuthorID,
			CreatedAt: row.BlogCreatedAt,
			UpdatedAt: row.BlogUpdatedAt,
		},
	}
	d.Author, d.AuthorProfile = row.summaries()
	return d
}

func blogEntryDetails(rows []blogEntryRow) []models.BlogEntryDetail {
	out := make([]models.BlogEntryDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.detail())
	}
	return out
}
