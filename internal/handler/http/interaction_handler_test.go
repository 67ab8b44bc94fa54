package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	handler "github.com/tomokihara/snapfeed/internal/handler/http"
	dto "github.com/tomokihara/snapfeed/internal/handler/http/dto"
	mocks "github.com/tomokihara/snapfeed/internal/handler/http/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/tomokihara/snapfeed/internal/usecase"
)

func setupInteractionRouter(h handler.InteractionHandlerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.POST("/posts/:postID/like", authAs("mock-user-id"), h.ToggleLike)
	r.GET("/posts/:postID/like-status", authAs("mock-user-id"), h.GetLikeStatus)
	r.GET("/posts/:postID/likes", h.GetLikes)
	r.POST("/posts/:postID/comments", authAs("mock-user-id"), h.AddComment)
	r.GET("/posts/:postID/comments", h.GetComments)
	r.DELETE("/posts/:postID/comments/:commentID", authAs("mock-user-id"), h.DeleteComment)
	return r
}

func TestToggleLike(t *testing.T) {
	mockUsecase := mocks.NewMockInteractionUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/like", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.LikeResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Liked)
	assert.Equal(t, 5, resp.LikeCount)
}

func TestToggleLike_PostNotFound(t *testing.T) {
	mockUsecase := mocks.NewMockInteractionUsecase()
	mockUsecase.ShouldFailToggleLike = true
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/missing/like", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "post not found")
}

func TestToggleLike_Unauthenticated(t *testing.T) {
	mockUsecase := mocks.NewMockInteractionUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := gin.Default()
	r.POST("/posts/:postID/like", h.ToggleLike)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/like", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetLikeStatus(t *testing.T) {
	mockUsecase := mocks.NewMockInteractionUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1/like-status", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":true`)
}

func TestGetLikes(t *testing.T) {
	mockUsecase := mocks.NewMockInteractionUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1/likes", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "testuser")
	assert.Contains(t, w.Body.String(), `"like_count":3`)
}

func TestAddComment(t *testing.T) {
	mockUsecase := mocks.NewMockInteractionUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h)

	body, _ := json.Marshal(dto.AddCommentRequest{Content: "nice shot"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.CommentResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "nice shot", resp.Comment.Content)
	assert.Equal(t, 3, resp.CommentCount)
}

func TestAddComment_MissingContent(t *testing.T) {
	mockUsecase := mocks.NewMockInteractionUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/comments", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Field validation for 'Content' failed on the 'required' tag")
}

func TestAddComment_ValidationError(t *testing.T) {
	mockUsecase := mocks.NewMockInteractionUsecase()
	mockUsecase.ShouldFailAddComment = true
	mockUsecase.FailWith = usecase.NewValidationError("comment must be 500 characters or fewer")
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h)

	body, _ := json.Marshal(dto.AddCommentRequest{Content: "whatever"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "500 characters or fewer")
}

func TestGetComments(t *testing.T) {
	mockUsecase := mocks.NewMockInteractionUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1/comments", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "nice shot")
	assert.Contains(t, w.Body.String(), `"comment_count":3`)
}

func TestDeleteComment(t *testing.T) {
	mockUsecase := mocks.NewMockInteractionUsecase()
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/post-1/comments/comment-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Comment deleted successfully")
	assert.Contains(t, w.Body.String(), `"comment_count":3`)
}

func TestDeleteComment_Forbidden(t *testing.T) {
	mockUsecase := mocks.NewMockInteractionUsecase()
	mockUsecase.ShouldFailDeleteComment = true
	mockUsecase.FailWith = usecase.ErrForbidden
	h := handler.NewInteractionHandler(mockUsecase)
	r := setupInteractionRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/post-1/comments/comment-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
