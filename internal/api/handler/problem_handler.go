package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/codeforge/problemhub/internal/api/metrics"
	"github.com/codeforge/problemhub/internal/core/ports"
)

// ProblemHandler serves the problem catalogue.
type ProblemHandler struct {
	service ports.ProblemService
}

func NewProblemHandler(service ports.ProblemService) *ProblemHandler {
	return &ProblemHandler{service: service}
}

// List handles GET /api/problems.
//
// @Summary      List problems
// @Tags         problems
// @Produce      json
// @Param        difficulty  query     string  false  "easy, medium or hard"
// @Param        tags        query     string  false  "Comma separated tag names"
// @Param        search      query     string  false  "Matches title or description"
// @Param        minRating   query     number  false  "Minimum average rating"
// @Param        maxRating   query     number  false  "Maximum average rating"
// @Param        page        query     int     false  "Page number"  default(1)
// @Param        limit       query     int     false  "Page size"    default(10)
// @Param        sortBy      query     string  false  "createdAt, title, difficulty or rating"
// @Param        sortOrder   query     string  false  "asc or desc"
// @Success      200         {object}  problemListResponse
// @Router       /problems [get]
func (h *ProblemHandler) List(c echo.Context) error {
	in := ports.ListProblemsInput{
		Difficulty: c.QueryParam("difficulty"),
		Tags:       splitList(c.QueryParam("tags")),
		Search:     c.QueryParam("search"),
		MinRating:  queryFloat(c, "minRating"),
		MaxRating:  queryFloat(c, "maxRating"),
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
		SortBy:     c.QueryParam("sortBy"),
		SortOrder:  c.QueryParam("sortOrder"),
	}

	page, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, problemListResponse{
		Problems:   page.Problems,
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		HasNext:    page.HasNext,
		HasPrev:    page.HasPrev,
	})
}

// Stats handles GET /api/problems/stats/overview.
//
// @Summary      Problem statistics
// @Tags         problems
// @Produce      json
// @Success      200  {object}  ports.ProblemStats
// @Router       /problems/stats/overview [get]
func (h *ProblemHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Get handles GET /api/problems/:id.
//
// @Summary      Get a problem
// @Tags         problems
// @Produce      json
// @Param        id   path      int  true  "Problem ID"
// @Success      200  {object}  ports.ProblemView
// @Failure      404  {object}  errorResponse
// @Router       /problems/{id} [get]
func (h *ProblemHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	view, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Create handles POST /api/problems (admin, interviewer).
//
// @Summary      Create a problem
// @Tags         problems
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProblemRequest  true  "Problem"
// @Success      201   {object}  domain.Problem
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /problems [post]
func (h *ProblemHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createProblemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	problem, err := h.service.Create(c.Request().Context(), ports.CreateProblemInput{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Examples:    toExamples(req.Examples),
		Tags:        req.Tags,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		return err
	}

	metrics.ProblemsCreatedTotal.WithLabelValues(string(problem.Difficulty)).Inc()
	return c.JSON(http.StatusCreated, problem)
}

// Update handles PUT /api/problems/:id (admin, interviewer).
//
// @Summary      Update a problem
// @Tags         problems
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Problem ID"
// @Param        body  body      updateProblemRequest  true  "Fields to change"
// @Success      200   {object}  domain.Problem
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /problems/{id} [put]
func (h *ProblemHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateProblemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateProblemInput{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Tags:        req.Tags,
	}
	if req.Examples != nil {
		examples := toExamples(*req.Examples)
		in.Examples = &examples
	}

	problem, err := h.service.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, problem)
}

// Delete handles DELETE /api/problems/:id (admin, interviewer).
//
// @Summary      Delete a problem
// @Tags         problems
// @Security     BearerAuth
// @Param        id   path  int  true  "Problem ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /problems/{id} [delete]
func (h *ProblemHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// splitList turns "a, b,,c" into [a b c].
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

