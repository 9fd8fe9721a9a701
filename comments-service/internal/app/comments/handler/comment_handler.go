package handler

import (
	"net/http"

	"gamestore/comments-service/internal/app/comments/entity"
	"gamestore/comments-service/internal/app/comments/service"
	"gamestore/pkg/auth"
	"gamestore/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CommentHandler struct {
	commentService service.CommentServiceInterface
	validator      *validator.Validate
}

func NewCommentHandler(commentService service.CommentServiceInterface) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator.New(),
	}
}

func (h *CommentHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return false
	}
	return true
}

// AddComment обрабатывает POST /games/{key}/comments
func (h *CommentHandler) AddComment(c *gin.Context) {
	var req entity.AddCommentRequest
	if !h.bind(c, &req) {
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), c.Param("key"), &req)
	if err != nil {
		respondError(c, err, "Failed to add comment")
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GetComments обрабатывает GET /games/{key}/comments, ответ - дерево
func (h *CommentHandler) GetComments(c *gin.Context) {
	tree, err := h.commentService.GetAllCommentsByGameKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err, "Failed to get comments")
		return
	}
	c.JSON(http.StatusOK, entity.CommentListResponse{Comments: tree, Total: len(tree)})
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.commentService.DeleteComment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete comment")
		return
	}
	logger.Info().Str("comment_id", c.Param("id")).Str("moderator", auth.UserName(c)).Msg("Comment deleted")
	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Comment deleted successfully"})
}

// BanUser обрабатывает POST /comments/ban
func (h *CommentHandler) BanUser(c *gin.Context) {
	var req entity.BanRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.commentService.BanUser(c.Request.Context(), req.Name, req.Duration); err != nil {
		respondError(c, err, "Failed to ban user")
		return
	}
	logger.Info().Str("name", req.Name).Str("duration", req.Duration).Str("moderator", auth.UserName(c)).Msg("User banned")
	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "User banned successfully"})
}

func (h *CommentHandler) GetBanDurations(c *gin.Context) {
	c.JSON(http.StatusOK, h.commentService.BanDurations())
}
