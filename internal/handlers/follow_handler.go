package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-dev/versebook/backend/internal/repositories"
)

// FollowHandler handles the follow toggle
type FollowHandler struct {
	userRepository repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{userRepository: userRepo}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// ToggleFollow flips the follow relationship between the current user and the
// target. Both sides of the relationship (actor.following, target.followers)
// are written sequentially; a crash between the two writes leaves asymmetric
// state. Self-follow is rejected.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	actorID, ok := currentUserObjectID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ctx := c.Request().Context()
	target, err := h.userRepository.GetUserByID(ctx, c.Param("id"))
	if err != nil {
		if err == repositories.ErrUserNotFound || err == repositories.ErrInvalidID {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if target.ID == actorID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	actor, err := h.userRepository.GetUserByID(ctx, actorID.Hex())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	following := containsObjectID(actor.Following, target.ID)
	followersCount := len(target.Followers)

	if following {
		if err := h.userRepository.RemoveFollowing(ctx, actor.ID, target.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if err := h.userRepository.RemoveFollower(ctx, target.ID, actor.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		followersCount--
	} else {
		if err := h.userRepository.AddFollowing(ctx, actor.ID, target.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if err := h.userRepository.AddFollower(ctx, target.ID, actor.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		followersCount++
	}

	return c.JSON(http.StatusOK, echo.Map{
		"following":       !following,
		"followers_count": followersCount,
	})
}
