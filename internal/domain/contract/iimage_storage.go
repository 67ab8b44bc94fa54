package contract

import (
	"context"
	"time"
)

// UploadTicket is a presigned upload slot for a client-side image upload.
type UploadTicket struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IImageStorage defines the interface for image object storage.
type IImageStorage interface {
	// PresignUpload issues a ticket allowing the client to PUT the image
	// directly into object storage under a server-chosen key.
	PresignUpload(ctx context.Context, userID, contentType string) (*UploadTicket, error)
	// ImageURL resolves a stored object key into a fetchable URL.
	ImageURL(key string) string
	RemoveImage(ctx context.Context, key string) error
}
