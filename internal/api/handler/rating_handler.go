package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeforge/problemhub/internal/api/middleware"
	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/ports"
)

type RatingHandler struct {
	service ports.RatingService
}

func NewRatingHandler(service ports.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

// Rate handles POST /api/ratings.
//
// @Summary      Rate a problem
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      rateRequest  true  "Rating"
// @Success      200   {object}  rateResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /ratings [post]
func (h *RatingHandler) Rate(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Rate(c.Request().Context(), actor, req.ProblemID, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rateResponse{
		Rating:        result.Rating,
		AverageRating: result.AverageRating,
		RatingCount:   result.RatingCount,
	})
}

// Summary handles GET /api/ratings/problems/:problemId. A signed-in caller
// also gets their own rating.
//
// @Summary      Rating summary of a problem
// @Tags         ratings
// @Produce      json
// @Param        problemId  path      int  true  "Problem ID"
// @Success      200        {object}  ratingSummaryResponse
// @Router       /ratings/problems/{problemId} [get]
func (h *RatingHandler) Summary(c echo.Context) error {
	problemID, err := pathID(c, "problemId")
	if err != nil {
		return err
	}

	summary, err := h.service.Summary(c.Request().Context(), problemID)
	if err != nil {
		return err
	}

	var own *domain.Rating
	if user, ok := middleware.CurrentUser(c); ok {
		if own, err = h.service.UserRating(c.Request().Context(), user.ID, problemID); err != nil {
			return err
		}
	}

	return c.JSON(http.StatusOK, ratingSummaryResponse{
		AverageRating: summary.AverageRating,
		RatingCount:   summary.RatingCount,
		UserRating:    own,
	})
}

// Mine handles GET /api/ratings/problems/:problemId/my-rating.
//
// @Summary      Own rating of a problem
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        problemId  path      int  true  "Problem ID"
// @Success      200        {object}  myRatingResponse
// @Failure      401        {object}  errorResponse
// @Router       /ratings/problems/{problemId}/my-rating [get]
func (h *RatingHandler) Mine(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	problemID, err := pathID(c, "problemId")
	if err != nil {
		return err
	}

	rating, err := h.service.UserRating(c.Request().Context(), actor.ID, problemID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, myRatingResponse{UserRating: rating})
}
