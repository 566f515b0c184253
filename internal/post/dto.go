// AngelaMos | 2026
// dto.go

package post

import "time"

type CreatePostRequest struct {
	Title      string   `json:"title"      validate:"required,min=1,max=200"`
	Content    string   `json:"content"    validate:"required,min=1"`
	Tags       []string `json:"tags"       validate:"omitempty,dive,min=1,max=50"`
	Categories []string `json:"categories" validate:"omitempty,dive,min=1,max=50"`
}

// UpdatePostRequest carries only the fields the caller wants to change;
// nil fields keep their current values.
type UpdatePostRequest struct {
	Title      *string  `json:"title"      validate:"omitempty,min=1,max=200"`
	Content    *string  `json:"content"    validate:"omitempty,min=1"`
	Tags       []string `json:"tags"       validate:"omitempty,dive,min=1,max=50"`
	Categories []string `json:"categories" validate:"omitempty,dive,min=1,max=50"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AuthorInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PostResponse struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Author     AuthorInfo `json:"author"`
	Tags       []string   `json:"tags"`
	Categories []string   `json:"categories"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func toPostResponse(p *Post) *PostResponse {
	return &PostResponse{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author: AuthorInfo{
			Name:  p.AuthorName,
			Email: p.AuthorEmail,
		},
		Tags:       p.Tags,
		Categories: p.Categories,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toPostResponses(posts []Post) []*PostResponse {
	out := make([]*PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toPostResponse(&posts[i]))
	}
	return out
}
