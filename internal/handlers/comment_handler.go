package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/tanvir-dev/versebook/backend/internal/models"
	"github.com/tanvir-dev/versebook/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	poemRepository    repositories.PoemRepository // To bump comment counts on poems
	userRepository    repositories.UserRepository // To expand comment authors
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, poemRepo repositories.PoemRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		poemRepository:    poemRepo,
		userRepository:    userRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/poems/:id/comments", h.CreateComment)
	g.GET("/poems/:id/comments", h.GetCommentsByPoemID)
}

// CreateComment creates a comment on a poem, or a reply when parent_id is
// set. Threading is one level deep: the parent must itself be top-level.
// Every creation increments the poem's comments_count.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	authorID, ok := currentUserObjectID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	poemID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	poem, err := h.poemRepository.GetPoemByID(ctx, poemID)
	if err != nil {
		if err == repositories.ErrPoemNotFound || err == repositories.ErrInvalidID {
			return echo.NewHTTPError(http.StatusNotFound, "Poem not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var parent *models.Comment
	if req.ParentID != "" {
		parent, err = h.commentRepository.GetCommentByID(ctx, req.ParentID)
		if err != nil {
			if err == repositories.ErrCommentNotFound || err == repositories.ErrInvalidID {
				return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if parent.PoemID != poem.ID {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent comment belongs to a different poem")
		}
		if parent.Parent != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Replies to replies are not supported")
		}
	}

	comment := &models.Comment{
		PoemID:  poem.ID,
		Author:  authorID,
		Content: req.Content,
	}
	if parent != nil {
		parentID := parent.ID
		comment.Parent = &parentID
	}

	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if parent != nil {
		if err := h.commentRepository.AppendReply(ctx, parent.ID, comment.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	// Replies count toward the poem's total as well
	if err := h.poemRepository.IncrementCommentsCount(ctx, poemID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPoemID retrieves a poem's top-level comments ordered by
// creation time ascending, each with its replies expanded one level
func (h *CommentHandler) GetCommentsByPoemID(c echo.Context) error {
	ctx := c.Request().Context()
	poem, err := h.poemRepository.GetPoemByID(ctx, c.Param("id"))
	if err != nil {
		if err == repositories.ErrPoemNotFound || err == repositories.ErrInvalidID {
			return echo.NewHTTPError(http.StatusNotFound, "Poem not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	topLevel, err := h.commentRepository.GetTopLevelByPoemID(ctx, poem.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Collect every reply id across the top-level comments
	replyIDs := []primitive.ObjectID{}
	for _, comment := range topLevel {
		replyIDs = append(replyIDs, comment.Replies...)
	}

	replies, err := h.commentRepository.GetCommentsByIDs(ctx, replyIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Expand authors for comments and replies in one lookup
	authorSet := make(map[primitive.ObjectID]bool)
	for _, comment := range topLevel {
		authorSet[comment.Author] = true
	}
	for _, reply := range replies {
		authorSet[reply.Author] = true
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

	// Group replies under their parent, keeping the ascending order
	replyMap := make(map[primitive.ObjectID][]models.CommentView)
	for _, reply := range replies {
		if reply.Parent == nil {
			continue
		}
		replyMap[*reply.Parent] = append(replyMap[*reply.Parent], models.CommentView{
			ID:        reply.ID,
			PoemID:    reply.PoemID,
			Author:    authorMap[reply.Author],
			Content:   reply.Content,
			CreatedAt: reply.CreatedAt,
		})
	}

	views := make([]models.CommentView, len(topLevel))
	for i, comment := range topLevel {
		views[i] = models.CommentView{
			ID:        comment.ID,
			PoemID:    comment.PoemID,
			Author:    authorMap[comment.Author],
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
			Replies:   replyMap[comment.ID],
		}
	}

	return c.JSON(http.StatusOK, views)
}
