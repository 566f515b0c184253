// AngelaMos | 2026
// handler_test.go

package comment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/blog-api/internal/core"
	"github.com/angelamos/blog-api/internal/middleware"
)

type fakeRepo struct {
	byID map[string]*Comment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*Comment{}}
}

func (f *fakeRepo) Create(_ context.Context, comment *Comment) error {
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	stored := *comment
	f.byID[comment.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Comment, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get comment: %w", core.ErrNotFound)
	}
	copied := *c
	copied.UserName = "Test User"
	return &copied, nil
}

func (f *fakeRepo) ListByPost(
	_ context.Context,
	postID string,
) ([]Comment, error) {
	comments := []Comment{}
	for _, c := range f.byID {
		if c.PostID == postID {
			copied := *c
			copied.UserName = "Test User"
			comments = append(comments, copied)
		}
	}
	return comments, nil
}

func (f *fakeRepo) Update(_ context.Context, comment *Comment) error {
	if _, ok := f.byID[comment.ID]; !ok {
		return fmt.Errorf("update comment: %w", core.ErrNotFound)
	}
	comment.UpdatedAt = time.Now()
	stored := *comment
	f.byID[comment.ID] = &stored
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return fmt.Errorf("delete comment: %w", core.ErrNotFound)
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRepo) seed(id, postID, userID, content string) *Comment {
	c := &Comment{
		ID:        id,
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.byID[id] = c
	return c
}

type fakePosts struct {
	ids map[string]struct{}
}

func (f *fakePosts) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.ids[id]
	return ok, nil
}

func identity(userID, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}
			ctx := r.Context()
			ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
			ctx = context.WithValue(ctx, middleware.UserRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(
	repo Repository,
	posts PostChecker,
	userID, role string,
) chi.Router {
	handler := NewHandler(NewService(repo, posts))
	router := chi.NewRouter()
	handler.RegisterRoutes(router, identity(userID, role))
	return router
}

func doJSON(
	t *testing.T,
	router chi.Router,
	method, path string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func knownPosts(ids ...string) *fakePosts {
	posts := &fakePosts{ids: map[string]struct{}{}}
	for _, id := range ids {
		posts.ids[id] = struct{}{}
	}
	return posts
}

func TestAddComment(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo, knownPosts("p1"), "reader-1", "Reader")

	rec := doJSON(t, router, http.MethodPost, "/comments/p1", AddCommentRequest{
		Content: "Nice post!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CommentResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "Nice post!", resp.Content)
	assert.Equal(t, "p1", resp.PostID)
	assert.Equal(t, "reader-1", resp.User.ID)
}

func TestAddCommentMissingPost(t *testing.T) {
	router := newTestRouter(newFakeRepo(), knownPosts(), "reader-1", "Reader")

	rec := doJSON(t, router, http.MethodPost, "/comments/ghost", AddCommentRequest{
		Content: "Hello?",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddCommentRequiresAuth(t *testing.T) {
	router := newTestRouter(newFakeRepo(), knownPosts("p1"), "", "")

	rec := doJSON(t, router, http.MethodPost, "/comments/p1", AddCommentRequest{
		Content: "anonymous",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListCommentsPublic(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("c1", "p1", "reader-1", "First!")
	repo.seed("c2", "other-post", "reader-2", "Unrelated")

	router := newTestRouter(repo, knownPosts("p1", "other-post"), "", "")

	rec := doJSON(t, router, http.MethodGet, "/comments/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var comments []CommentResponse
	decodeData(t, rec, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "First!", comments[0].Content)
}

func TestListCommentsUnknownPostIsEmpty(t *testing.T) {
	router := newTestRouter(newFakeRepo(), knownPosts(), "", "")

	rec := doJSON(t, router, http.MethodGet, "/comments/ghost", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var comments []CommentResponse
	decodeData(t, rec, &comments)
	assert.Empty(t, comments)
}

func TestEditCommentOwnerOnly(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
	}{
		{"owner can edit", "reader-1", "Reader", http.StatusOK},
		{"other user forbidden", "reader-2", "Reader", http.StatusForbidden},
		// Admins moderate by deletion, not by rewriting content.
		{"admin cannot edit", "admin-1", "Admin", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			repo.seed("c1", "p1", "reader-1", "original")
			router := newTestRouter(repo, knownPosts("p1"), tt.userID, tt.role)

			rec := doJSON(t, router, http.MethodPut, "/comments/c1", EditCommentRequest{
				Content: "edited",
			})
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "edited", repo.byID["c1"].Content)
			} else {
				assert.Equal(t, "original", repo.byID["c1"].Content)
			}
		})
	}
}

func TestDeleteComment(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
		deleted    bool
	}{
		{"owner can delete", "reader-1", "Reader", http.StatusOK, true},
		{"admin can delete", "admin-1", "Admin", http.StatusOK, true},
		{"other user forbidden", "reader-2", "Reader", http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			repo.seed("c1", "p1", "reader-1", "target")
			router := newTestRouter(repo, knownPosts("p1"), tt.userID, tt.role)

			rec := doJSON(t, router, http.MethodDelete, "/comments/c1", nil)
			assert.Equal(t, tt.wantStatus, rec.Code)

			_, exists := repo.byID["c1"]
			assert.Equal(t, tt.deleted, !exists)
		})
	}
}

func TestEditCommentNotFound(t *testing.T) {
	router := newTestRouter(newFakeRepo(), knownPosts("p1"), "reader-1", "Reader")

	rec := doJSON(t, router, http.MethodPut, "/comments/ghost", EditCommentRequest{
		Content: "edited",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
