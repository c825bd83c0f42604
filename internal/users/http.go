package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/gamedex/gamedex/internal/platform/request"
	"github.com/gamedex/gamedex/internal/platform/respond"
	"github.com/gamedex/gamedex/pkg/pagination"
	"github.com/gamedex/gamedex/pkg/search"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the account CRUD routes. These sit behind the gate and,
// when a gate is active, behind the admin role check.
func (h *Handler) Register(router chi.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
	router.Get("/{id}", h.get)
	router.Put("/{id}", h.update)
	router.Delete("/{id}", h.delete)
}

// RegisterAuth mounts the token-issuing routes. They stay outside the gate:
// a client cannot present a token before obtaining one.
func (h *Handler) RegisterAuth(router chi.Router) {
	router.Post("/users/authBearer", h.authBearer)
	router.Post("/users/authJWT", h.authJWT)
}

func (h *Handler) list(writer http.ResponseWriter, request *http.Request) {
	if term, ok := search.ParseTerm(request.URL.Query().Get("q")); ok {
		items, err := h.svc.Search(request.Context(), term)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, items)
		return
	}

	page := pagination.FromRequest(request)
	result, err := h.svc.List(request.Context(), page, request.URL.Query().Get("sort"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	links := pagination.Links(pagination.BaseURL(request), page.Limit, page.Offset, result.Total)
	respond.List(writer, result.Items, result.Total, page, links, result.Sort)
}

func (h *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	user, err := h.svc.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (h *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload Payload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	user, err := h.svc.Create(request.Context(), &payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "User created", user)
}

func (h *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	var payload Payload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	user, err := h.svc.Update(request.Context(), id, &payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Updated(writer, "User updated", user)
}

func (h *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := h.svc.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Deleted(writer, "User deleted")
}

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
	Type  string `json:"type"`
}

func (h *Handler) authBearer(writer http.ResponseWriter, request *http.Request) {
	h.issueToken(writer, request, h.svc.IssueBearerToken)
}

func (h *Handler) authJWT(writer http.ResponseWriter, request *http.Request) {
	h.issueToken(writer, request, h.svc.IssueJWT)
}

func (h *Handler) issueToken(writer http.ResponseWriter, request *http.Request,
	issue func(ctx context.Context, username, password string) (string, error)) {

	var body authRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}
	token, err := issue(request.Context(), body.Username, body.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tokenResponse{Token: token, Type: "Bearer"})
}
