package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-dev/versebook/backend/internal/repositories"
)

// LikeHandler handles the like toggle on poems
type LikeHandler struct {
	poemRepository repositories.PoemRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(poemRepo repositories.PoemRepository) *LikeHandler {
	return &LikeHandler{poemRepository: poemRepo}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/poems/:id/like", h.ToggleLike)
	g.GET("/poems/:id/like", h.GetLikeStatus)
}

// ToggleLike flips the current user's membership in the poem's likes set and
// adjusts likes_count by exactly one, returning the new state and counter
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	poemID := c.Param("id")

	ctx := c.Request().Context()
	poem, err := h.poemRepository.GetPoemByID(ctx, poemID)
	if err != nil {
		if err == repositories.ErrPoemNotFound || err == repositories.ErrInvalidID {
			return echo.NewHTTPError(http.StatusNotFound, "Poem not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	liked := containsObjectID(poem.Likes, userID)
	likesCount := poem.LikesCount

	if liked {
		if err := h.poemRepository.RemoveLike(ctx, poemID, userID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		likesCount--
	} else {
		if err := h.poemRepository.AddLike(ctx, poemID, userID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		likesCount++
	}

	return c.JSON(http.StatusOK, echo.Map{
		"liked":       !liked,
		"likes_count": likesCount,
	})
}

// GetLikeStatus reports whether the current user has liked the poem, along
// with the current counter
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	poemID := c.Param("id")

	poem, err := h.poemRepository.GetPoemByID(c.Request().Context(), poemID)
	if err != nil {
		if err == repositories.ErrPoemNotFound || err == repositories.ErrInvalidID {
			return echo.NewHTTPError(http.StatusNotFound, "Poem not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"liked":       containsObjectID(poem.Likes, userID),
		"likes_count": poem.LikesCount,
	})
}
