package entity

import "time"

// Post represents one shared photo with its caption and interaction counts.
type Post struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	ImageKey     string    `bson:"image_key" json:"image_key"`
	ImageURL     string    `bson:"-" json:"image_url,omitempty"`
	Caption      string    `bson:"caption" json:"caption"`
	LikeCount    int       `bson:"like_count" json:"like_count"`
	CommentCount int       `bson:"comment_count" json:"comment_count"`
	// LikedByMe is computed per viewer at read time and never persisted.
	LikedByMe bool      `bson:"-" json:"liked_by_me"`
	Author    *Author   `bson:"-" json:"user,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Author is the embedded public slice of a user attached to posts and comments.
type Author struct {
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	AvatarKey *string `json:"avatar_key,omitempty"`
}
