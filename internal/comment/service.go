// AngelaMos | 2026
// service.go

package comment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/blog-api/internal/core"
	"github.com/angelamos/blog-api/internal/user"
)

// PostChecker reports whether a post exists. Satisfied by post.Repository.
type PostChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo  Repository
	posts PostChecker
}

func NewService(repo Repository, posts PostChecker) *Service {
	return &Service{repo: repo, posts: posts}
}

func (s *Service) Add(
	ctx context.Context,
	postID, userID string,
	req *AddCommentRequest,
) (*CommentResponse, error) {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("add comment: %w", core.ErrNotFound)
	}

	comment := &Comment{
		ID:      uuid.New().String(),
		PostID:  postID,
		UserID:  userID,
		Content: req.Content,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	return toCommentResponse(created), nil
}

// ListByPost does not care whether the post exists: an unknown id yields an
// empty list, same as a post with no comments.
func (s *Service) ListByPost(
	ctx context.Context,
	postID string,
) ([]*CommentResponse, error) {
	comments, err := s.repo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return toCommentResponses(comments), nil
}

// Edit is restricted to the comment's author; admins cannot edit other
// users' comments, only delete them.
func (s *Service) Edit(
	ctx context.Context,
	id, callerID string,
	req *EditCommentRequest,
) (*CommentResponse, error) {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if comment.UserID != callerID {
		return nil, fmt.Errorf("edit comment: %w", core.ErrForbidden)
	}

	comment.Content = req.Content

	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return toCommentResponse(comment), nil
}

func (s *Service) Delete(
	ctx context.Context,
	id, callerID, callerRole string,
) error {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.UserID != callerID && callerRole != user.RoleAdmin {
		return fmt.Errorf("delete comment: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, id)
}
