package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tomokihara/snapfeed/internal/domain/contract"
)

// ImageStore implements contract.IImageStorage on MinIO/S3. Clients upload
// images directly with presigned PUT URLs; the server only hands out keys.
type ImageStore struct {
	client        *mclient.Client
	bucket        string
	publicBaseURL string
	presignTTL    time.Duration
	random        contract.IRandomGenerator
}

var _ contract.IImageStorage = (*ImageStore)(nil)

// NewImageStore connects to the object store and verifies the bucket exists.
// endpoint may carry a scheme; it is stripped and used to pick TLS.
func NewImageStore(ctx context.Context, endpoint, accessKey, secretKey, bucket, publicBaseURL string, presignTTL time.Duration, random contract.IRandomGenerator) (*ImageStore, error) {
	secure := strings.HasPrefix(endpoint, "https://")
	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", bucket)
	}

	return &ImageStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		presignTTL:    presignTTL,
		random:        random,
	}, nil
}

// objectKey builds a storage key of the form "posts/<userID>/<random><ext>"
// for a whitelisted image content type.
func (s *ImageStore) objectKey(userID, contentType string) (string, error) {
	var ext string
	switch contentType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/webp":
		ext = ".webp"
	default:
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	name, err := s.random.GenerateRandomToken(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate object key: %w", err)
	}
	return path.Join("posts", userID, name+ext), nil
}

// PresignUpload issues a presigned PUT URL under a key of the form
// "posts/<userID>/<random><ext>".
func (s *ImageStore) PresignUpload(ctx context.Context, userID, contentType string) (*contract.UploadTicket, error) {
	key, err := s.objectKey(userID, contentType)
	if err != nil {
		return nil, err
	}
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, s.presignTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &contract.UploadTicket{
		Key:       key,
		UploadURL: u.String(),
		ExpiresAt: time.Now().Add(s.presignTTL),
	}, nil
}

// ImageURL resolves a stored key into a public fetch URL.
func (s *ImageStore) ImageURL(key string) string {
	if key == "" {
		return ""
	}
	return s.publicBaseURL + "/" + key
}

// RemoveImage deletes the object for a key. Missing objects are not an error.
func (s *ImageStore) RemoveImage(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, mclient.RemoveObjectOptions{})
	if err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
			return nil
		}
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}
