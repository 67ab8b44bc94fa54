package feed_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tomokihara/snapfeed/internal/domain/entity"
	"github.com/tomokihara/snapfeed/internal/feed"
)

func TestClient_ToggleLike(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/posts/p1/like", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{"liked": true, "like_count": 6})
	}))
	defer srv.Close()

	client := feed.NewClient(srv.URL, feed.WithTokenSource(func() string { return "tok-123" }))
	result, err := client.ToggleLike(context.Background(), "p1")
	assert.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 6, result.LikeCount)
}

func TestClient_AddComment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/posts/p1/comments", r.URL.Path)
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "hello", body["content"])
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"comment": entity.Comment{ID: "c1", PostID: "p1", UserID: "u1", Content: "hello"},
			"comment_count": 3,
		})
	}))
	defer srv.Close()

	client := feed.NewClient(srv.URL)
	comment, err := client.AddComment(context.Background(), "p1", "hello")
	assert.NoError(t, err)
	assert.Equal(t, "c1", comment.ID)
	assert.Equal(t, "hello", comment.Content)
}

func TestClient_SurfacesServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "post not found"})
	}))
	defer srv.Close()

	client := feed.NewClient(srv.URL)
	err := client.DeletePost(context.Background(), "missing")
	assert.EqualError(t, err, "post not found")
}

func TestClient_FallbackErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := feed.NewClient(srv.URL)
	_, err := client.ToggleLike(context.Background(), "p1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
