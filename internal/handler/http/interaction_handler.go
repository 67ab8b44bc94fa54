package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tomokihara/snapfeed/internal/handler/http/dto"
	"github.com/tomokihara/snapfeed/internal/infrastructure/metrics"
	usecasecontract "github.com/tomokihara/snapfeed/internal/usecase/contract"
)

// InteractionHandlerInterface defines the methods for the interaction handler.
type InteractionHandlerInterface interface {
	ToggleLike(*gin.Context)
	GetLikes(*gin.Context)
	GetLikeStatus(*gin.Context)
	AddComment(*gin.Context)
	GetComments(*gin.Context)
	DeleteComment(*gin.Context)
}

var _ InteractionHandlerInterface = (*InteractionHandler)(nil)

type InteractionHandler struct {
	interactionUsecase usecasecontract.IInteractionUseCase
}

func NewInteractionHandler(interactionUsecase usecasecontract.IInteractionUseCase) *InteractionHandler {
	return &InteractionHandler{
		interactionUsecase: interactionUsecase,
	}
}

// ToggleLike likes or unlikes a post and returns the authoritative state.
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	result, err := h.interactionUsecase.ToggleLike(c.Request.Context(), userID, c.Param("postID"))
	if err != nil {
		metrics.InteractionsTotal.WithLabelValues("like", "failure").Inc()
		UsecaseErrorHandler(c, err)
		return
	}
	metrics.InteractionsTotal.WithLabelValues("like", "success").Inc()
	SuccessHandler(c, http.StatusOK, dto.LikeResponse{
		Liked:     result.Liked,
		LikeCount: result.LikeCount,
	})
}

// GetLikes lists the users who liked a post.
func (h *InteractionHandler) GetLikes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	likes, total, err := h.interactionUsecase.ListLikes(c.Request.Context(), c.Param("postID"), limit)
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.LikeListResponse{
		Likes:     likes,
		LikeCount: total,
	})
}

// GetLikeStatus reports whether the authenticated user liked a post.
func (h *InteractionHandler) GetLikeStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	liked, err := h.interactionUsecase.LikeStatus(c.Request.Context(), userID, c.Param("postID"))
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"liked": liked})
}

// AddComment creates a comment on a post.
func (h *InteractionHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AddCommentRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	comment, count, err := h.interactionUsecase.AddComment(c.Request.Context(), userID, c.Param("postID"), req.Content)
	if err != nil {
		metrics.InteractionsTotal.WithLabelValues("comment", "failure").Inc()
		UsecaseErrorHandler(c, err)
		return
	}
	metrics.InteractionsTotal.WithLabelValues("comment", "success").Inc()
	SuccessHandler(c, http.StatusCreated, dto.CommentResponse{
		Comment:      *comment,
		CommentCount: count,
	})
}

// GetComments lists a post's comments, oldest first.
func (h *InteractionHandler) GetComments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	comments, total, err := h.interactionUsecase.ListComments(c.Request.Context(), c.Param("postID"), limit)
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.CommentListResponse{
		Comments:     comments,
		CommentCount: total,
	})
}

// DeleteComment removes the authenticated user's own comment.
func (h *InteractionHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	count, err := h.interactionUsecase.DeleteComment(c.Request.Context(), userID, c.Param("postID"), c.Param("commentID"))
	if err != nil {
		metrics.InteractionsTotal.WithLabelValues("delete", "failure").Inc()
		UsecaseErrorHandler(c, err)
		return
	}
	metrics.InteractionsTotal.WithLabelValues("delete", "success").Inc()
	SuccessHandler(c, http.StatusOK, gin.H{
		"message":       "Comment deleted successfully",
		"comment_count": count,
	})
}
