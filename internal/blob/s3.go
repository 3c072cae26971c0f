// Package blob stores user-uploaded profile photos in S3 and hands out
// short-lived presigned GET URLs for the app to display them.
package blob

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader is the S3 surface used for writes. Tests substitute a fake.
type Uploader interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Presigner mirrors s3.PresignClient's GET method so tests can fake it.
type Presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Store uploads objects and signs read URLs against one bucket.
type Store struct {
	uploader  Uploader
	presigner Presigner
	bucket    string
	ttl       time.Duration
}

// NewStore returns a Store bound to bucket. ttl bounds presigned URL
// lifetime.
func NewStore(uploader Uploader, presigner Presigner, bucket string, ttl time.Duration) *Store {
	return &Store{uploader: uploader, presigner: presigner, bucket: bucket, ttl: ttl}
}

// allowed photo content types; anything else is rejected before upload.
var contentTypeExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// ErrUnsupportedType is returned for uploads that are not a known image type.
var ErrUnsupportedType = fmt.Errorf("unsupported content type")

// Upload stores the photo under a fresh key scoped to the owner and returns
// the object key. Keys look like "uploads/<userID>/<uuid>.jpg".
func (s *Store) Upload(ctx context.Context, userID, contentType string, body io.Reader) (string, error) {
	ext, ok := contentTypeExt[strings.ToLower(contentType)]
	if !ok {
		return "", ErrUnsupportedType
	}
	key := path.Join("uploads", userID, uuid.NewString()+ext)
	_, err := s.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// PresignGet returns a time-limited GET URL for an object key previously
// returned by Upload.
func (s *Store) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = s.ttl
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
