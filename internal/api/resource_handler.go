package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pcparts/catalog/internal/api/respond"
	"github.com/pcparts/catalog/internal/api/validate"
	"github.com/pcparts/catalog/internal/catalog"
	"github.com/pcparts/catalog/internal/model"
)

// identified is implemented by every response body.
type identified interface{ ResourceID() string }

// crudService is the part of catalog.Service the HTTP layer needs.
type crudService[D any, V identified] interface {
	Kind() model.Kind
	List(ctx context.Context) ([]V, error)
	Page(ctx context.Context, req catalog.PageRequest) (*catalog.Page[V], error)
	Get(ctx context.Context, id string) (V, error)
	Create(ctx context.Context, dto *D) (V, error)
	Replace(ctx context.Context, id string, dto *D) (V, error)
	Update(ctx context.Context, id string, dto *D) (V, error)
	Delete(ctx context.Context, id string) error
}

// ResourceHandler exposes one resource under /api/v1/{path}.
type ResourceHandler[D any, V identified] struct {
	svc    crudService[D, V]
	paging Paging
	base   string
}

func NewResourceHandler[D any, V identified](svc crudService[D, V], paging Paging) *ResourceHandler[D, V] {
	return &ResourceHandler[D, V]{svc: svc, paging: paging, base: "/api/v1/" + svc.Kind().Path()}
}

// Register mounts the routes. /pageable is registered ahead of /{id}.
func (h *ResourceHandler[D, V]) Register(r *mux.Router) {
	r.HandleFunc(h.base, h.List).Methods(http.MethodGet)
	r.HandleFunc(h.base, h.Create).Methods(http.MethodPost)
	r.HandleFunc(h.base+"/pageable", h.Page).Methods(http.MethodGet)
	r.HandleFunc(h.base+"/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc(h.base+"/{id}", h.Replace).Methods(http.MethodPut)
	r.HandleFunc(h.base+"/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc(h.base+"/{id}", h.Delete).Methods(http.MethodDelete)
}

// List handles GET /api/v1/{resource}
func (h *ResourceHandler[D, V]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		respond.WriteError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, items)
}

// Page handles GET /api/v1/{resource}/pageable
func (h *ResourceHandler[D, V]) Page(w http.ResponseWriter, r *http.Request) {
	req, err := h.paging.parsePageRequest(r.URL.Query())
	if err != nil {
		respond.WriteError(w, r, err)
		return
	}
	page, err := h.svc.Page(r.Context(), req)
	if err != nil {
		respond.WriteError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /api/v1/{resource}/{id}
func (h *ResourceHandler[D, V]) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respond.WriteError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// Create handles POST /api/v1/{resource}
func (h *ResourceHandler[D, V]) Create(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decode(w, r)
	if !ok {
		return
	}
	out, err := h.svc.Create(r.Context(), dto)
	if err != nil {
		respond.WriteError(w, r, err)
		return
	}
	w.Header().Set("Location", h.base+"/"+out.ResourceID())
	respond.WriteJSON(w, http.StatusCreated, out)
}

// Replace handles PUT /api/v1/{resource}/{id}
func (h *ResourceHandler[D, V]) Replace(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decode(w, r)
	if !ok {
		return
	}
	out, err := h.svc.Replace(r.Context(), mux.Vars(r)["id"], dto)
	if err != nil {
		respond.WriteError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// Update handles PATCH /api/v1/{resource}/{id}
func (h *ResourceHandler[D, V]) Update(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decode(w, r)
	if !ok {
		return
	}
	out, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], dto)
	if err != nil {
		respond.WriteError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// Delete handles DELETE /api/v1/{resource}/{id}; unknown ids still get 204.
func (h *ResourceHandler[D, V]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respond.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResourceHandler[D, V]) decode(w http.ResponseWriter, r *http.Request) (*D, bool) {
	dto := new(D)
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		respond.WriteBadRequest(w, respond.MalformedBody)
		return nil, false
	}
	if err := validate.Struct(dto); err != nil {
		respond.WriteError(w, r, err)
		return nil, false
	}
	return dto, true
}
