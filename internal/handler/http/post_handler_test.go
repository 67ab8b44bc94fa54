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
)

func setupPostRouter(h handler.PostHandlerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.GET("/posts", h.GetTimeline)
	r.GET("/posts/:postID", h.GetPost)
	r.GET("/users/:id/posts", h.GetUserPosts)
	r.POST("/posts", authAs("mock-user-id"), h.CreatePost)
	r.DELETE("/posts/:postID", authAs("mock-user-id"), h.DeletePost)
	r.POST("/images/upload-url", authAs("mock-user-id"), h.PresignUpload)
	return r
}

func TestCreatePost(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupPostRouter(h)

	body, _ := json.Marshal(dto.CreatePostRequest{
		ImageKey: "posts/mock-user-id/abc.jpg",
		Caption:  "a caption",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "mock-post-id")
	assert.Contains(t, w.Body.String(), "cdn.example.com")
}

func TestCreatePost_MissingImageKey(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupPostRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewBufferString(`{"caption":"no image"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Field validation for 'ImageKey' failed on the 'required' tag")
}

func TestGetTimeline(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupPostRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?limit=10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.TimelineResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Len(t, resp.Posts, 1)
	assert.False(t, resp.HasMore)
}

func TestGetPost_NotFound(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	mockUsecase.ShouldFailGet = true
	h := handler.NewPostHandler(mockUsecase)
	r := setupPostRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/missing", nil)
	r.ServeHTTP(w, req)

	// Generic mock error maps to 500; not-found mapping is covered in the
	// usecase tests.
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestDeletePost(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupPostRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/mock-post-id", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Post deleted successfully")
}

func TestDeletePost_Unauthenticated(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := gin.Default()
	r.DELETE("/posts/:postID", h.DeletePost)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/mock-post-id", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not authenticated")
}

func TestPresignUpload(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	h := handler.NewPostHandler(mockUsecase)
	r := setupPostRouter(h)

	body, _ := json.Marshal(dto.PresignUploadRequest{ContentType: "image/jpeg"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/images/upload-url", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "s3.example.com")
}

func TestPresignUpload_BadContentType(t *testing.T) {
	mockUsecase := mocks.NewMockPostUsecase()
	mockUsecase.ShouldFailPresign = true
	h := handler.NewPostHandler(mockUsecase)
	r := setupPostRouter(h)

	body, _ := json.Marshal(dto.PresignUploadRequest{ContentType: "application/pdf"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/images/upload-url", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.NotEqual(t, http.StatusOK, w.Code)
}
