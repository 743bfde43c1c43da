package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidPath = errors.New("invalid file path")
)

// Storage keeps uploaded car photos under slash-separated keys such as
// "cars/<carId>/<name>.jpg". Get and Exists treat a missing key as ErrNotFound
// and false respectively.
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// GetURL is the address stored in a car's images list.
	GetURL(key string) string
}

type Config struct {
	Type     string // local, s3, cloudflare_r2
	BasePath string // local only
	// BaseURL prefixes keys in GetURL. Local storage defaults to /files,
	// which the file handler serves.
	BaseURL    string
	Bucket     string
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string // R2 or another S3-compatible endpoint
	PublicRead bool
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// CarImageKey returns a fresh key for a photo of carID. Runs of characters
// outside [A-Za-z0-9_-] in carID become a single "_".
func CarImageKey(carID, ext string) string {
	return "cars/" + unsafeKeyChars.ReplaceAllString(carID, "_") + "/" + uuid.NewString() + ext
}

func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
