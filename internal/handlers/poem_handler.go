package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/tanvir-dev/versebook/backend/internal/models"
	"github.com/tanvir-dev/versebook/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PoemHandler handles HTTP requests related to poems
type PoemHandler struct {
	poemRepository    repositories.PoemRepository
	commentRepository repositories.CommentRepository // For cascade deletion of comments
	userRepository    repositories.UserRepository    // To expand authors in listings
}

// NewPoemHandler creates a new PoemHandler
func NewPoemHandler(poemRepo repositories.PoemRepository, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *PoemHandler {
	return &PoemHandler{
		poemRepository:    poemRepo,
		commentRepository: commentRepo,
		userRepository:    userRepo,
	}
}

// RegisterPoemRoutes registers poem-related routes
func (h *PoemHandler) RegisterPoemRoutes(g *echo.Group) {
	g.POST("/poems", h.CreatePoem)
	g.GET("/poems", h.ListPoems)
	g.GET("/poems/:id", h.GetPoem)
	g.PUT("/poems/:id", h.UpdatePoem)
	g.DELETE("/poems/:id", h.DeletePoem)
	g.PUT("/poems/:id/feature", h.SetFeatured)
}

// CreatePoem creates a new poem
func (h *PoemHandler) CreatePoem(c echo.Context) error {
	authorID, ok := currentUserObjectID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePoemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	poem := &models.Poem{
		Title:    req.Title,
		Content:  req.Content,
		Author:   authorID,
		Category: req.Category,
		Tags:     req.Tags,
		Image:    req.Image,
	}

	if err := h.poemRepository.CreatePoem(c.Request().Context(), poem); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, poem)
}

// GetPoem retrieves a poem by ID
func (h *PoemHandler) GetPoem(c echo.Context) error {
	poem, err := h.poemRepository.GetPoemByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrPoemNotFound || err == repositories.ErrInvalidID {
			return echo.NewHTTPError(http.StatusNotFound, "Poem not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, poem)
}

// EnrichedPoem is a poem with author info and the current user's like status
type EnrichedPoem struct {
	models.Poem
	AuthorInfo models.UserCompact `json:"author_info"`
	IsLiked    bool               `json:"is_liked"`
}

// ListPoems retrieves poems with optional category/search/featured filters,
// one of four sort orders, and offset/limit pagination
func (h *PoemHandler) ListPoems(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	opts := repositories.ListPoemsOptions{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
		Author:   c.QueryParam("author"),
		Skip:     int64((page - 1) * limit),
		Limit:    int64(limit),
	}
	if featured := c.QueryParam("featured"); featured != "" {
		f := featured == "true"
		opts.Featured = &f
	}

	ctx := c.Request().Context()
	poems, err := h.poemRepository.ListPoems(ctx, opts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalItems, err := h.poemRepository.CountPoems(ctx, opts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Collect unique author IDs and expand them to compact users
	authorSet := make(map[primitive.ObjectID]bool)
	for _, p := range poems {
		authorSet[p.Author] = true
	}
	authorIDs := make([]primitive.ObjectID, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}

	authorMap := make(map[primitive.ObjectID]models.UserCompact)
	authors, err := h.userRepository.GetUsersByIDs(ctx, authorIDs)
	if err == nil {
		for i := range authors {
			authorMap[authors[i].ID] = authors[i].ToCompact()
		}
	}

	currentID, authenticated := currentUserObjectID(c)

	enriched := make([]EnrichedPoem, len(poems))
	for i, p := range poems {
		enriched[i] = EnrichedPoem{
			Poem:       p,
			AuthorInfo: authorMap[p.Author],
			IsLiked:    authenticated && containsObjectID(p.Likes, currentID),
		}
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"poems": enriched,
		"meta": echo.Map{
			"currentPage":  page,
			"totalPages":   totalPages,
			"totalItems":   totalItems,
			"itemsPerPage": limit,
		},
	})
}

// UpdatePoem updates an existing poem (author only)
func (h *PoemHandler) UpdatePoem(c echo.Context) error {
	authorID, ok := currentUserObjectID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	poemID := c.Param("id")

	var req models.UpdatePoemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	existingPoem, err := h.poemRepository.GetPoemByID(ctx, poemID)
	if err != nil {
		if err == repositories.ErrPoemNotFound || err == repositories.ErrInvalidID {
			return echo.NewHTTPError(http.StatusNotFound, "Poem not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Ensure the user updating the poem is the owner
	if existingPoem.Author != authorID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this poem")
	}

	if req.Title != "" {
		existingPoem.Title = req.Title
	}
	if req.Content != "" {
		existingPoem.Content = req.Content
	}
	if req.Category != "" {
		existingPoem.Category = req.Category
	}
	if req.Tags != nil {
		existingPoem.Tags = req.Tags
	}
	if req.Image != "" {
		existingPoem.Image = req.Image
	}

	if err := h.poemRepository.UpdatePoem(ctx, poemID, existingPoem); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, existingPoem)
}

// DeletePoem deletes a poem (author only) and cascades deletion of its
// comments
func (h *PoemHandler) DeletePoem(c echo.Context) error {
	authorID, ok := currentUserObjectID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	poemID := c.Param("id")

	ctx := c.Request().Context()
	existingPoem, err := h.poemRepository.GetPoemByID(ctx, poemID)
	if err != nil {
		if err == repositories.ErrPoemNotFound || err == repositories.ErrInvalidID {
			return echo.NewHTTPError(http.StatusNotFound, "Poem not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Ensure the user deleting the poem is the owner
	if existingPoem.Author != authorID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this poem")
	}

	if err := h.poemRepository.DeletePoem(ctx, poemID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Cascade: a deleted poem takes its comments with it
	if _, err := h.commentRepository.DeleteByPoemID(ctx, existingPoem.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// SetFeaturedRequest defines the request body for the feature flag
type SetFeaturedRequest struct {
	Featured bool `json:"featured"`
}

// SetFeatured sets the featured flag of a poem (author only)
func (h *PoemHandler) SetFeatured(c echo.Context) error {
	authorID, ok := currentUserObjectID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	poemID := c.Param("id")

	var req SetFeaturedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	ctx := c.Request().Context()
	existingPoem, err := h.poemRepository.GetPoemByID(ctx, poemID)
	if err != nil {
		if err == repositories.ErrPoemNotFound || err == repositories.ErrInvalidID {
			return echo.NewHTTPError(http.StatusNotFound, "Poem not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if existingPoem.Author != authorID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to feature this poem")
	}

	if err := h.poemRepository.SetFeatured(ctx, poemID, req.Featured); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"id": poemID, "featured": req.Featured})
}
