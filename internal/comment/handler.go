// AngelaMos | 2026
// handler.go

package comment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/blog-api/internal/core"
	"github.com/angelamos/blog-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the comment endpoints. The {id} segment names a
// post for POST and GET and a comment for PUT and DELETE.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticate func(http.Handler) http.Handler,
) {
	r.Route("/comments", func(r chi.Router) {
		r.Get("/{id}", h.ListByPost)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/{id}", h.Add)
			r.Put("/{id}", h.Edit)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())

	resp, err := h.service.Add(r.Context(), postID, userID, &req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "post")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	comments, err := h.service.ListByPost(r.Context(), postID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, comments)
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req EditCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	callerID := middleware.GetUserID(r.Context())

	resp, err := h.service.Edit(r.Context(), id, callerID, &req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "comment")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "you can only edit your own comments")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	callerID := middleware.GetUserID(r.Context())
	callerRole := middleware.GetUserRole(r.Context())

	err := h.service.Delete(r.Context(), id, callerID, callerRole)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "comment")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "you can only delete your own comments")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, MessageResponse{Message: "comment deleted successfully"})
}
