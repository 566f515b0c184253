// AngelaMos | 2026
// service.go

package post

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/blog-api/internal/core"
	"github.com/angelamos/blog-api/internal/user"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	authorID string,
	req *CreatePostRequest,
) (*PostResponse, error) {
	post := &Post{
		ID:         uuid.New().String(),
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   authorID,
		Tags:       req.Tags,
		Categories: req.Categories,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return toPostResponse(created), nil
}

func (s *Service) Get(ctx context.Context, id string) (*PostResponse, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPostResponse(post), nil
}

func (s *Service) List(ctx context.Context) ([]*PostResponse, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toPostResponses(posts), nil
}

// Update applies only the fields present in the request; omitted fields keep
// their stored values. The caller must own the post or hold the Admin role.
func (s *Service) Update(
	ctx context.Context,
	id, callerID, callerRole string,
	req *UpdatePostRequest,
) (*PostResponse, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != callerID && callerRole != user.RoleAdmin {
		return nil, fmt.Errorf("update post: %w", core.ErrForbidden)
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}
	if req.Categories != nil {
		post.Categories = req.Categories
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	return toPostResponse(post), nil
}

func (s *Service) Delete(
	ctx context.Context,
	id, callerID, callerRole string,
) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if post.AuthorID != callerID && callerRole != user.RoleAdmin {
		return fmt.Errorf("delete post: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, id)
}
