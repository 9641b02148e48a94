package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"log"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/lostconnect/backend/config"
	"github.com/lostconnect/backend/db"
	"github.com/lostconnect/backend/models"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Uploaded images are bounded to this edge length; anything larger is
// scaled down before it hits storage.
const maxImageDimension = 1200

const thumbnailDimension = 320

type MediaService interface {
	UploadDataURI(ctx context.Context, dataURI, folder string) (*models.Image, error)
	UploadDataURIBatch(ctx context.Context, dataURIs []string, folder string) ([]models.Image, error)
	DeleteImages(ctx context.Context, images []models.Image) error
}

type mediaService struct {
	Config    *config.Config
	mediaRepo db.MediaRepository
}

func NewMediaService(mediaRepo db.MediaRepository, conf *config.Config) MediaService {
	return &mediaService{
		Config:    conf,
		mediaRepo: mediaRepo,
	}
}

// decodeDataURI splits a "data:image/...;base64,..." payload into raw bytes.
func decodeDataURI(dataURI string) ([]byte, error) {
	if !strings.HasPrefix(dataURI, "data:image/") {
		return nil, errors.New("invalid image format, expected a data URI")
	}
	idx := strings.Index(dataURI, ";base64,")
	if idx < 0 {
		return nil, errors.New("invalid data URI, missing base64 payload")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURI[idx+len(";base64,"):])
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode base64 image")
	}
	return raw, nil
}

func thumbKeyFor(key string) string {
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		return key[:idx] + "/thumbs" + key[idx:]
	}
	return "thumbs/" + key
}

// UploadDataURI decodes, bounds and stores a single image plus its
// thumbnail, returning the stored reference.
func (m *mediaService) UploadDataURI(ctx context.Context, dataURI, folder string) (*models.Image, error) {
	raw, err := decodeDataURI(dataURI)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDimension || bounds.Dy() > maxImageDimension {
		img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
		bounds = img.Bounds()
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, errors.Wrap(err, "failed to encode image")
	}

	key := fmt.Sprintf("%s/%s.jpg", folder, uuid.New().String())
	fileURL, err := m.mediaRepo.UploadObject(ctx, key, buf.Bytes(), "image/jpeg")
	if err != nil {
		return nil, err
	}

	thumb := resize.Thumbnail(thumbnailDimension, thumbnailDimension, img, resize.Lanczos3)
	var thumbBuf bytes.Buffer
	if err := jpeg.Encode(&thumbBuf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return nil, errors.Wrap(err, "failed to encode thumbnail")
	}
	thumbURL, err := m.mediaRepo.UploadObject(ctx, thumbKeyFor(key), thumbBuf.Bytes(), "image/jpeg")
	if err != nil {
		// The full-size object made it up; don't leave it orphaned.
		if delErr := m.mediaRepo.DeleteObject(ctx, key); delErr != nil {
			log.Printf("failed to clean up %s after thumbnail failure: %v", key, delErr)
		}
		return nil, err
	}

	return &models.Image{
		URL:          fileURL,
		ThumbnailURL: thumbURL,
		PublicID:     key,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
	}, nil
}

// UploadDataURIBatch uploads every image or none: on failure the images
// already stored are deleted before the error is surfaced.
func (m *mediaService) UploadDataURIBatch(ctx context.Context, dataURIs []string, folder string) ([]models.Image, error) {
	uploaded := make([]models.Image, 0, len(dataURIs))
	for _, dataURI := range dataURIs {
		img, err := m.UploadDataURI(ctx, dataURI, folder)
		if err != nil {
			if cleanupErr := m.DeleteImages(ctx, uploaded); cleanupErr != nil {
				log.Printf("failed to roll back %d uploaded images: %v", len(uploaded), cleanupErr)
			}
			return nil, err
		}
		uploaded = append(uploaded, *img)
	}
	return uploaded, nil
}

// DeleteImages removes stored objects and their thumbnails. Deletion
// keeps going past individual failures so one missing object doesn't
// strand the rest.
func (m *mediaService) DeleteImages(ctx context.Context, images []models.Image) error {
	var firstErr error
	for _, img := range images {
		if img.PublicID == "" {
			continue
		}
		if err := m.mediaRepo.DeleteObject(ctx, img.PublicID); err != nil && firstErr == nil {
			firstErr = err
		}
		if img.ThumbnailURL != "" {
			if err := m.mediaRepo.DeleteObject(ctx, thumbKeyFor(img.PublicID)); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
