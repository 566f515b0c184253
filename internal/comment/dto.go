// AngelaMos | 2026
// dto.go

package comment

import "time"

type AddCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type EditCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CommentAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CommentResponse struct {
	ID        string        `json:"id"`
	PostID    string        `json:"postId"`
	User      CommentAuthor `json:"user"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func toCommentResponse(c *Comment) *CommentResponse {
	return &CommentResponse{
		ID:     c.ID,
		PostID: c.PostID,
		User: CommentAuthor{
			ID:   c.UserID,
			Name: c.UserName,
		},
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCommentResponses(comments []Comment) []*CommentResponse {
	out := make([]*CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentResponse(&comments[i]))
	}
	return out
}
