package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catlinkdev/go-catcare-backend/internal/blob"
	"github.com/catlinkdev/go-catcare-backend/internal/sysutil"
)

// maxUploadBytes caps profile photo uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// UploadStore abstracts the object store used for profile photos.
type UploadStore interface {
	Upload(ctx context.Context, userID, contentType string, body io.Reader) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// UploadResponse returns the stored object key plus a short-lived download
// URL for immediate display.
type UploadResponse struct {
	Key string `json:"key" example:"uploads/u1/3f2a....jpg"`
	URL string `json:"url" example:"https://bucket.s3.amazonaws.com/uploads/..."`
}

// PresignResponse carries a fresh download URL for a stored object.
type PresignResponse struct {
	URL string `json:"url"`
}

// UploadPhoto godoc
// @ID          uploadPhoto
// @Summary     Upload a profile photo
// @Description Streams the request body to the object store under a per-user key and returns the key plus a presigned download URL. Content-Type must be an image type (jpeg, png, webp, heic).
// @Tags        Uploads
// @Accept      octet-stream
// @Produce     json
//
// @Param       Content-Type  header  string  true  "Image MIME type"  example(image/jpeg)
//
// @Success     201  {object}  handlers.UploadResponse
// @Failure     400  {object}  handlers.ErrorResponse "Unsupported type"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /uploads [post]
func (h *Handlers) UploadPhoto(c *gin.Context) {
	if h.uploads == nil {
		fail(c, http.StatusServiceUnavailable, ErrCodeUploadFailed, "object storage not configured")
		return
	}
	ctx := c.Request.Context()
	body := io.LimitReader(c.Request.Body, maxUploadBytes)
	ct := sysutil.FirstNonEmpty(c.ContentType(), "application/octet-stream")
	key, err := h.uploads.Upload(ctx, userID(c), ct, body)
	if err != nil {
		if errors.Is(err, blob.ErrUnsupportedType) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unsupported content type")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, err.Error())
		return
	}
	url, err := h.uploads.PresignGet(ctx, key)
	if err != nil {
		// The object is stored; return the key without a URL.
		ok(c, http.StatusCreated, UploadResponse{Key: key})
		return
	}
	ok(c, http.StatusCreated, UploadResponse{Key: key, URL: url})
}

// PresignPhoto godoc
// @ID          presignPhoto
// @Summary     Presign a photo download
// @Description Returns a short-lived GET URL for a previously uploaded object key.
// @Tags        Uploads
// @Produce     json
//
// @Param       key  query  string  true  "Object key"
//
// @Success     200  {object}  handlers.PresignResponse
// @Failure     400  {object}  handlers.ErrorResponse "Missing key"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /uploads/presign [get]
func (h *Handlers) PresignPhoto(c *gin.Context) {
	if h.uploads == nil {
		fail(c, http.StatusServiceUnavailable, ErrCodeUploadFailed, "object storage not configured")
		return
	}
	key := c.Query("key")
	if key == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "key is required")
		return
	}
	url, err := h.uploads.PresignGet(c.Request.Context(), key)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, PresignResponse{URL: url})
}
