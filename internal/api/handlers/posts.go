package handlers

import (
	"net/http"
	"strconv"

	"github.com/baharkarakas/blog-backend/internal/api/httpx"
	"github.com/baharkarakas/blog-backend/internal/auth"
	"github.com/baharkarakas/blog-backend/internal/middleware"
	"github.com/baharkarakas/blog-backend/internal/services"
	"github.com/baharkarakas/blog-backend/internal/validation"
	"github.com/go-chi/chi/v5"
)

type PostHandler struct {
	svc *services.PostService
}

func NewPostHandler(svc *services.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

type createPostReq struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type editPostReq struct {
	PostID  string `json:"post_id" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type deletePostReq struct {
	PostID string `json:"post_id" validate:"required"`
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.FromCtx(r.Context())
	if !ok {
		writeServiceError(w, r, auth.ErrInvalidToken)
		return
	}
	var req createPostReq
	if !decode(w, r, &req) {
		return
	}
	p, err := h.svc.Create(r.Context(), u.UserID, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteOK(w, "post created", p)
}

func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.FromCtx(r.Context())
	if !ok {
		writeServiceError(w, r, auth.ErrInvalidToken)
		return
	}
	var req editPostReq
	if !decode(w, r, &req) {
		return
	}
	p, err := h.svc.Edit(r.Context(), req.PostID, u.UserID, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteOK(w, "post updated", p)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.FromCtx(r.Context())
	if !ok {
		writeServiceError(w, r, auth.ErrInvalidToken)
		return
	}
	var req deletePostReq
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.Delete(r.Context(), req.PostID, u.UserID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteOK(w, "post deleted", map[string]string{"post_id": req.PostID})
}

// News serves GET /api/post/news?page&page_size and /api/post/news/{page}.
func (h *PostHandler) News(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rawPage := chi.URLParam(r, "page")
	if rawPage == "" {
		rawPage = q.Get("page")
	}

	page, pageErr := intParam("page", rawPage, 1)
	size, sizeErr := intParam("page_size", q.Get("page_size"), services.DefaultPageSize)
	if sizeErr == nil {
		sizeErr = validation.IntRange("page_size", size, 1, services.MaxPageSize)
	}
	if err := validation.Collect(pageErr, sizeErr); err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.svc.List(r.Context(), page, size)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteOK(w, "", res)
}

func intParam(field, raw string, def int) (int, *validation.ErrField) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &validation.ErrField{Field: field, Rule: "integer", Msg: "must be an integer"}
	}
	return n, nil
}
