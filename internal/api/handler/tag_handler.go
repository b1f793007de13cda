package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeforge/problemhub/internal/core/ports"
)

// TagHandler serves tag endpoints. Mutations are admin only.
type TagHandler struct {
	service ports.TagService
}

func NewTagHandler(service ports.TagService) *TagHandler {
	return &TagHandler{service: service}
}

// List handles GET /api/tags.
//
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Param        search  query     string  false  "Matches name or description"
// @Param        page    query     int     false  "Page number"  default(1)
// @Param        limit   query     int     false  "Page size"    default(20)
// @Success      200     {object}  tagListResponse
// @Router       /tags [get]
func (h *TagHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), ports.ListTagsInput{
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tagListResponse{
		Tags:       page.Tags,
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	})
}

// Popular handles GET /api/tags/popular.
//
// @Summary      Most used tags
// @Tags         tags
// @Produce      json
// @Success      200  {object}  popularTagsResponse
// @Router       /tags/popular [get]
func (h *TagHandler) Popular(c echo.Context) error {
	tags, err := h.service.Popular(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, popularTagsResponse{Tags: tags, Total: len(tags)})
}

// Create handles POST /api/tags.
//
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      tagRequest  true  "Tag"
// @Success      201   {object}  domain.Tag
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /tags [post]
func (h *TagHandler) Create(c echo.Context) error {
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tag, err := h.service.Create(c.Request().Context(), ports.TagInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tag)
}

// Update handles PUT /api/tags/:id.
//
// @Summary      Update a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int         true  "Tag ID"
// @Param        body  body      tagRequest  true  "Fields to change"
// @Success      200   {object}  domain.Tag
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /tags/{id} [put]
func (h *TagHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tag, err := h.service.Update(c.Request().Context(), id, ports.TagInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tag)
}

// Delete handles DELETE /api/tags/:id.
//
// @Summary      Delete a tag
// @Tags         tags
// @Security     BearerAuth
// @Param        id   path  int  true  "Tag ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tags/{id} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
