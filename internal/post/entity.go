// AngelaMos | 2026
// entity.go

package post

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Post struct {
	ID         string      `db:"id"          json:"id"`
	Title      string      `db:"title"       json:"title"`
	Content    string      `db:"content"     json:"content"`
	AuthorID   string      `db:"author_id"   json:"authorId"`
	Tags       StringSlice `db:"tags"        json:"tags"`
	Categories StringSlice `db:"categories"  json:"categories"`
	CreatedAt  time.Time   `db:"created_at"  json:"createdAt"`
	UpdatedAt  time.Time   `db:"updated_at"  json:"updatedAt"`

	// Populated from the users table on reads.
	AuthorName  string `db:"author_name"  json:"-"`
	AuthorEmail string `db:"author_email" json:"-"`
}

// StringSlice stores a list of strings in a jsonb column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		s = StringSlice{}
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(src any) error {
	if src == nil {
		*s = StringSlice{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan string slice: unsupported type %T", src)
	}

	return json.Unmarshal(data, s)
}
