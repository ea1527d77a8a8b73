package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shivon404/financy-backend/internal/core/ports"
)

type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List returns every category ordered by name.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]domain.Category}
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", categories)
}

// ListWithUsage returns every category with its expense count.
//
// @Summary      List categories with usage
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]domain.CategoryUsage}
// @Router       /api/admin/categories [get]
func (h *CategoryHandler) ListWithUsage(c echo.Context) error {
	categories, err := h.service.ListCategoriesWithUsage(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", categories)
}

// Get returns one category.
//
// @Summary      Get category
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  envelope{data=domain.Category}
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.service.GetCategory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", category)
}

// Create adds a category.
//
// @Summary      Create category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  envelope{data=domain.Category}
// @Failure      400   {object}  errorResponse
// @Router       /api/admin/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.service.CreateCategory(c.Request().Context(), req.Name, req.Icon)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "category created", category)
}

// Update renames a category or changes its icon.
//
// @Summary      Update category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Category ID"
// @Param        body  body      categoryRequest  true  "Category"
// @Success      200   {object}  envelope
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateCategory(c.Request().Context(), id, req.Name, req.Icon); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "category updated", nil)
}

// Delete removes an unused category.
//
// @Summary      Delete category
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategory(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "category deleted", nil)
}
