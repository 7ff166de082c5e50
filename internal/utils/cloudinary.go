package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/scholarsource/scholarsource-backend/internal/config"
)

// ImageUploader stores images on a media CDN and returns their public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, file multipart.File, folder string) (string, error)
}

// CloudinaryUploader implements ImageUploader against Cloudinary.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader creates a new CloudinaryUploader from configuration.
func NewCloudinaryUploader(cfg *config.Config) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

// UploadImage uploads the file into the given folder and returns the secure URL.
func (u *CloudinaryUploader) UploadImage(ctx context.Context, file multipart.File, folder string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}
	return resp.SecureURL, nil
}
