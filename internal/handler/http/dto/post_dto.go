package dto

import (
	"time"

	"github.com/tomokihara/snapfeed/internal/domain/contract"
	"github.com/tomokihara/snapfeed/internal/domain/entity"
)

// Request DTOs for Post Handlers

// CreatePostRequest defines the structure for creating a new post.
type CreatePostRequest struct {
	ImageKey string `json:"image_key" binding:"required"`
	Caption  string `json:"caption" binding:"max=1000"`
}

// AddCommentRequest defines the structure for commenting on a post.
type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// PresignUploadRequest asks for a presigned image upload slot.
type PresignUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// Response DTOs

// PostResponse defines the standard JSON response for a single post.
type PostResponse struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	ImageURL     string         `json:"image_url"`
	Caption      string         `json:"caption"`
	LikeCount    int            `json:"like_count"`
	CommentCount int            `json:"comment_count"`
	LikedByMe    bool           `json:"liked_by_me"`
	User         *entity.Author `json:"user,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// TimelineResponse is one page of the feed.
type TimelineResponse struct {
	Posts      []PostResponse `json:"posts"`
	NextCursor string         `json:"next_cursor,omitempty"`
	HasMore    bool           `json:"has_more"`
}

// LikeResponse is the authoritative like state after a toggle.
type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// CommentResponse wraps a created comment with the post's new count.
type CommentResponse struct {
	Comment      entity.Comment `json:"comment"`
	CommentCount int            `json:"comment_count"`
}

// CommentListResponse is the set of comments under a post.
type CommentListResponse struct {
	Comments     []*entity.Comment `json:"comments"`
	CommentCount int               `json:"comment_count"`
}

// LikeListResponse lists the users who liked a post.
type LikeListResponse struct {
	Likes     []*entity.Author `json:"likes"`
	LikeCount int              `json:"like_count"`
}

// ToPostResponse converts an entity.Post to a PostResponse.
func ToPostResponse(post *entity.Post) PostResponse {
	return PostResponse{
		ID:           post.ID,
		UserID:       post.UserID,
		ImageURL:     post.ImageURL,
		Caption:      post.Caption,
		LikeCount:    post.LikeCount,
		CommentCount: post.CommentCount,
		LikedByMe:    post.LikedByMe,
		User:         post.Author,
		CreatedAt:    post.CreatedAt,
	}
}

// ToTimelineResponse converts a repository page to the wire shape.
func ToTimelineResponse(page *contract.TimelinePage) TimelineResponse {
	posts := make([]PostResponse, 0, len(page.Posts))
	for _, p := range page.Posts {
		posts = append(posts, ToPostResponse(p))
	}
	return TimelineResponse{
		Posts:      posts,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}
}
