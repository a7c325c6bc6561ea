package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	uploadFolder = "automotora/vehiculos"

	// Bounded dimensions with automatic quality, applied at upload time
	// so stored URLs always point at a display-ready asset.
	uploadTransformation = "c_limit,w_1200,h_900/q_auto:good"
)

// UploadedImage is what the hosting provider hands back per item.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// ImageHost abstracts the external hosting provider.
type ImageHost interface {
	Upload(ctx context.Context, dataURI string) (*UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
}

// CloudinaryService implements ImageHost against Cloudinary.
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

func (s *CloudinaryService) Upload(ctx context.Context, dataURI string) (*UploadedImage, error) {
	resp, err := s.cld.Upload.Upload(ctx, dataURI, uploader.UploadParams{
		Folder:         uploadFolder,
		Transformation: uploadTransformation,
	})
	if err != nil {
		return nil, fmt.Errorf("error al subir la imagen: %w", err)
	}

	return &UploadedImage{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
		Width:    resp.Width,
		Height:   resp.Height,
	}, nil
}

func (s *CloudinaryService) Delete(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("error al eliminar la imagen: %w", err)
	}
	return nil
}

// PublicIDFromURL recovers the provider identifier from a stored asset
// URL, for rows written before the identifier was stored explicitly.
// Format: https://res.cloudinary.com/<cloud>/image/upload/v123/<folder>/<name>.jpg
// Returns "" when the URL does not follow that shape.
func PublicIDFromURL(url string) string {
	parts := strings.Split(url, "/")
	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx+2 >= len(parts) {
		return ""
	}

	// Skip the version segment after /upload/.
	path := strings.Join(parts[uploadIdx+2:], "/")
	dot := strings.LastIndex(path, ".")
	if dot <= 0 {
		return ""
	}
	return path[:dot]
}
