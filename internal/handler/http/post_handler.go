package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tomokihara/snapfeed/internal/handler/http/dto"
	usecasecontract "github.com/tomokihara/snapfeed/internal/usecase/contract"
)

// PostHandlerInterface defines the methods for the post handler.
type PostHandlerInterface interface {
	CreatePost(*gin.Context)
	GetTimeline(*gin.Context)
	GetPost(*gin.Context)
	GetUserPosts(*gin.Context)
	DeletePost(*gin.Context)
	PresignUpload(*gin.Context)
}

var _ PostHandlerInterface = (*PostHandler)(nil)

type PostHandler struct {
	postUsecase usecasecontract.IPostUseCase
}

func NewPostHandler(postUsecase usecasecontract.IPostUseCase) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
	}
}

// CreatePost creates a post referencing an uploaded image.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePostRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	post, err := h.postUsecase.CreatePost(c.Request.Context(), userID, req.ImageKey, req.Caption)
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToPostResponse(post))
}

// GetTimeline returns one page of the global feed.
func (h *PostHandler) GetTimeline(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	viewer, _ := viewerID.(string)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	cursor := c.Query("cursor")

	page, err := h.postUsecase.Timeline(c.Request.Context(), viewer, cursor, limit)
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToTimelineResponse(page))
}

// GetPost returns a single post.
func (h *PostHandler) GetPost(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	viewer, _ := viewerID.(string)

	post, err := h.postUsecase.GetPost(c.Request.Context(), c.Param("postID"), viewer)
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToPostResponse(post))
}

// GetUserPosts returns one page of a user's posts.
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	viewer, _ := viewerID.(string)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	cursor := c.Query("cursor")

	page, err := h.postUsecase.UserPosts(c.Request.Context(), c.Param("id"), viewer, cursor, limit)
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToTimelineResponse(page))
}

// DeletePost removes a post the authenticated user owns.
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.postUsecase.DeletePost(c.Request.Context(), userID, c.Param("postID")); err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Post deleted successfully")
}

// PresignUpload issues a presigned image upload URL.
func (h *PostHandler) PresignUpload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.PresignUploadRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	ticket, err := h.postUsecase.PresignImageUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		UsecaseErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, ticket)
}
