package voucher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/snowtrip/hokkaido/internal/utils"
	"github.com/snowtrip/hokkaido/pkg/session"
)

const maxKeyLength = 255

// reservedKey collides with the /api/vouchers/images/{ref} route.
const reservedKey = "images"

var ErrInvalidKey = errors.New("invalid voucher key")

type Service interface {
	// Open returns the voucher for key, creating it on first view.
	Open(ctx context.Context, key string) (Voucher, error)
	// Edit switches the voucher to edit mode.
	Edit(ctx context.Context, key string) (Voucher, error)
	// Save writes fields verbatim and switches the voucher to view mode.
	Save(ctx context.Context, key string, fields Fields) (Voucher, error)
	List(ctx context.Context) ([]Voucher, error)
	// UploadImage stores an image for later use in Save and returns its reference.
	UploadImage(ctx context.Context, key string, src io.Reader) (string, error)
	Image(ctx context.Context, ref string) ([]byte, error)
	QRCode(ctx context.Context, key string) ([]byte, error)
}

type ServiceImpl struct {
	repo   Repository
	images ImageStore
	clock  utils.Clock
}

func NewService(repo Repository, images ImageStore, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, images: images, clock: clock}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" || len(key) > maxKeyLength || key == reservedKey {
		return ErrInvalidKey
	}
	return nil
}

func (s *ServiceImpl) Open(ctx context.Context, key string) (Voucher, error) {
	sessionId, err := session.CurrentId(ctx)
	if err != nil {
		return Voucher{}, fmt.Errorf("failed to get current session: %w", err)
	}
	if err := validateKey(key); err != nil {
		return Voucher{}, err
	}
	return s.open(ctx, sessionId, key)
}

func (s *ServiceImpl) open(ctx context.Context, sessionId string, key string) (Voucher, error) {
	v, err := s.repo.Get(ctx, sessionId, key)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrVoucherNotFound) {
		return Voucher{}, err
	}

	fresh := Voucher{Key: key, UpdatedAt: s.clock.Now()}
	fresh.Mode = initialMode(fresh.Fields)
	log.Debugf("creating voucher %s in %s mode", key, fresh.Mode)
	return s.repo.CreateIfAbsent(ctx, sessionId, fresh)
}

func (s *ServiceImpl) Edit(ctx context.Context, key string) (Voucher, error) {
	sessionId, err := session.CurrentId(ctx)
	if err != nil {
		return Voucher{}, fmt.Errorf("failed to get current session: %w", err)
	}
	if err := validateKey(key); err != nil {
		return Voucher{}, err
	}

	v, err := s.open(ctx, sessionId, key)
	if err != nil {
		return Voucher{}, err
	}
	if v.Mode == ModeEdit {
		return v, nil
	}
	v.Mode = ModeEdit
	return s.repo.Store(ctx, sessionId, v)
}

func (s *ServiceImpl) Save(ctx context.Context, key string, fields Fields) (Voucher, error) {
	sessionId, err := session.CurrentId(ctx)
	if err != nil {
		return Voucher{}, fmt.Errorf("failed to get current session: %w", err)
	}
	if err := validateKey(key); err != nil {
		return Voucher{}, err
	}

	v := Voucher{
		Key:       key,
		Fields:    fields,
		Mode:      ModeView,
		UpdatedAt: s.clock.Now(),
	}
	saved, err := s.repo.Store(ctx, sessionId, v)
	if err != nil {
		return Voucher{}, fmt.Errorf("failed to save voucher: %w", err)
	}
	log.Debugf("saved voucher %s", key)
	return saved, nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]Voucher, error) {
	sessionId, err := session.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current session: %w", err)
	}
	return s.repo.List(ctx, sessionId)
}

func (s *ServiceImpl) UploadImage(ctx context.Context, key string, src io.Reader) (string, error) {
	sessionId, err := session.CurrentId(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get current session: %w", err)
	}
	if err := validateKey(key); err != nil {
		return "", err
	}

	data, err := normalizeImage(src)
	if err != nil {
		return "", err
	}
	ref := newImageRef()
	if err := s.images.Put(ctx, objectName(sessionId, ref), data, imageContentType); err != nil {
		log.Errorf("failed to store image for voucher %s: %v", key, err)
		return "", err
	}
	log.Debugf("stored image %s for voucher %s", ref, key)
	return ref, nil
}

func (s *ServiceImpl) Image(ctx context.Context, ref string) ([]byte, error) {
	sessionId, err := session.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current session: %w", err)
	}
	if !imageRefPattern.MatchString(ref) {
		return nil, ErrInvalidImageRef
	}
	return s.images.Get(ctx, objectName(sessionId, ref))
}

func (s *ServiceImpl) QRCode(ctx context.Context, key string) ([]byte, error) {
	sessionId, err := session.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current session: %w", err)
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	v, err := s.repo.Get(ctx, sessionId, key)
	if err != nil {
		if errors.Is(err, ErrVoucherNotFound) {
			return nil, ErrNothingToEncode
		}
		return nil, err
	}
	payload, err := qrPayload(v)
	if err != nil {
		return nil, err
	}
	png, err := encodeQR(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}
