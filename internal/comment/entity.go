// AngelaMos | 2026
// entity.go

package comment

import "time"

type Comment struct {
	ID        string    `db:"id"         json:"id"`
	PostID    string    `db:"post_id"    json:"postId"`
	UserID    string    `db:"user_id"    json:"userId"`
	Content   string    `db:"content"    json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Populated from the users table on reads.
	UserName string `db:"user_name" json:"-"`
}
