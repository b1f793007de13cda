package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeforge/problemhub/internal/core/ports"
)

// CommentHandler serves discussion threads. Ownership rules live in the
// service: edits are author only, deletes are author or admin.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// ListByProblem handles GET /api/comments/problems/:problemId.
//
// @Summary      Comment threads of a problem
// @Tags         comments
// @Produce      json
// @Param        problemId  path      int  true  "Problem ID"
// @Success      200        {object}  commentListResponse
// @Router       /comments/problems/{problemId} [get]
func (h *CommentHandler) ListByProblem(c echo.Context) error {
	problemID, err := pathID(c, "problemId")
	if err != nil {
		return err
	}
	threads, err := h.service.ListThreads(c.Request().Context(), problemID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commentListResponse{Comments: threads, Total: len(threads)})
}

// Create handles POST /api/comments.
//
// @Summary      Post a comment or reply
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  ports.CommentView
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.service.Create(c.Request().Context(), actor, ports.CreateCommentInput{
		Content:   req.Content,
		ProblemID: req.ProblemID,
		ParentID:  req.ParentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

// Update handles PUT /api/comments/:id.
//
// @Summary      Edit own comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Comment ID"
// @Param        body  body      updateCommentRequest  true  "New content"
// @Success      200   {object}  ports.CommentView
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /comments/{id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.service.Update(c.Request().Context(), actor, id, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /api/comments/:id.
//
// @Summary      Delete a comment and its replies
// @Tags         comments
// @Security     BearerAuth
// @Param        id   path  int  true  "Comment ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
