package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryMediaStore uploads pet and avatar photos to Cloudinary instead of
// local disk. Selected at startup when credentials are configured.
type CloudinaryMediaStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryMediaStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryMediaStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryMediaStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryMediaStore) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", nil
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	return result.SecureURL, nil
}
