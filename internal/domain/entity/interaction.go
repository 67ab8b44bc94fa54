package entity

import "time"

// Like records that a user liked a post. One document per (post, user) pair.
type Like struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	PostID    string    `bson:"post_id" json:"post_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Comment is a user comment on a post.
type Comment struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	PostID    string    `bson:"post_id" json:"post_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Content   string    `bson:"content" json:"content"`
	Author    *Author   `bson:"-" json:"user,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// MaxCommentLength is the upper bound on a trimmed comment body.
const MaxCommentLength = 500
