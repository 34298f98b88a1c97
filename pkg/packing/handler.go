package packing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/snowtrip/hokkaido/internal/rest"
)

type ListDTO struct {
	Categories []CategoryDTO `json:"categories"`
	Checked    int           `json:"checked"`
	Total      int           `json:"total"`
	Progress   float64       `json:"progress"`
}

type CategoryDTO struct {
	Name  string    `json:"name"`
	Items []ItemDTO `json:"items"`
}

type ItemDTO struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

type NameDTO struct {
	Name string `json:"name"`
}

type CheckedDTO struct {
	Checked bool `json:"checked"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// Get godoc
// @Summary Packing list of the current session
// @Tags Packing
// @Produce json
// @Success 200 {object} ListDTO
// @Router /api/packing [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ListToDTO(list))
}

// Toggle godoc
// @Summary Set an item's checked state
// @Tags Packing
// @Accept json
// @Produce json
// @Param item path string true "Item name"
// @Param state body CheckedDTO true "Checked state"
// @Success 200 {object} ListDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/packing/items/{item}/checked [put]
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	item := mux.Vars(r)["item"]
	var state CheckedDTO
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	list, err := h.service.Toggle(r.Context(), item, state.Checked)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ListToDTO(list))
}

// AddCategory godoc
// @Summary Add a category
// @Tags Packing
// @Accept json
// @Produce json
// @Param category body NameDTO true "Category"
// @Success 201 {object} ListDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse
// @Router /api/packing/categories [post]
func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var body NameDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	list, err := h.service.AddCategory(r.Context(), body.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ListToDTO(list))
}

// RemoveCategory godoc
// @Summary Remove a category with all its items
// @Tags Packing
// @Produce json
// @Param category path string true "Category name"
// @Success 200 {object} ListDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/packing/categories/{category} [delete]
func (h *Handler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	list, err := h.service.RemoveCategory(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ListToDTO(list))
}

// AddItem godoc
// @Summary Add an item to a category
// @Description Creates the category when it does not exist.
// @Tags Packing
// @Accept json
// @Produce json
// @Param category path string true "Category name"
// @Param item body NameDTO true "Item"
// @Success 201 {object} ListDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse
// @Router /api/packing/categories/{category}/items [post]
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	var body NameDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	list, err := h.service.AddItem(r.Context(), category, body.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ListToDTO(list))
}

// RemoveItem godoc
// @Summary Remove an item
// @Tags Packing
// @Produce json
// @Param category path string true "Category name"
// @Param item path string true "Item name"
// @Success 200 {object} ListDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/packing/categories/{category}/items/{item} [delete]
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	list, err := h.service.RemoveItem(r.Context(), vars["category"], vars["item"])
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ListToDTO(list))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidName):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrCategoryNotFound):
		rest.WriteError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, ErrItemExists), errors.Is(err, ErrCategoryExists):
		rest.WriteError(w, http.StatusConflict, err.Error(), "")
	default:
		log.Errorf("packing request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func ListToDTO(list List) ListDTO {
	categories := make([]CategoryDTO, 0, len(list.Categories))
	for _, c := range list.Categories {
		items := make([]ItemDTO, 0, len(c.Items))
		for _, item := range c.Items {
			items = append(items, ItemDTO{Name: item, Checked: list.Checked[item]})
		}
		categories = append(categories, CategoryDTO{Name: c.Name, Items: items})
	}
	return ListDTO{
		Categories: categories,
		Checked:    list.CheckedCount(),
		Total:      list.ItemCount(),
		Progress:   list.Progress(),
	}
}
