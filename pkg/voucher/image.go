package voucher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	maxImageSide     = 1280
	imageContentType = "image/jpeg"
	jpegQuality      = 85
)

var ErrImageNotFound = errors.New("image not found")
var ErrInvalidImage = errors.New("invalid image")
var ErrInvalidImageRef = errors.New("invalid image reference")

var imageRefPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.jpg$`)

type ImageStore interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
	Get(ctx context.Context, name string) ([]byte, error)
}

// normalizeImage decodes src, shrinks it to fit maxImageSide and re-encodes it as JPEG.
func normalizeImage(src io.Reader) ([]byte, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageSide || bounds.Dy() > maxImageSide {
		img = imaging.Fit(img, maxImageSide, maxImageSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func newImageRef() string {
	return uuid.NewString() + ".jpg"
}

func objectName(sessionId string, ref string) string {
	return fmt.Sprintf("vouchers/%s/%s", sessionId, ref)
}

type MemoryImageStore struct {
	mu     sync.RWMutex
	images map[string][]byte
}

func NewMemoryImageStore() *MemoryImageStore {
	return &MemoryImageStore{images: make(map[string][]byte)}
}

func (s *MemoryImageStore) Put(ctx context.Context, name string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[name] = data
	return nil
}

func (s *MemoryImageStore) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.images[name]
	if !ok {
		return nil, ErrImageNotFound
	}
	return data, nil
}
