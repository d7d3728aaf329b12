package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding
	"math"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

const (
	PhotoClockIn  = "clock-in"
	PhotoClockOut = "clock-out"

	maxPhotoBytes = 10 << 20
	maxStoredSize = 150 * 1024
	minStoredSize = 50 * 1024
)

var (
	ErrInvalidPhoto  = errors.New("photo must be a valid base64 encoded jpeg or png image")
	ErrPhotoTooLarge = errors.New("photo must not exceed 10MB")
)

type FileService interface {
	// StoreAttendancePhoto decodes a base64 or data URL photo, compresses it
	// and stores it as JPEG. It returns the storage key.
	StoreAttendancePhoto(ctx context.Context, internID string, date time.Time, kind string, encoded string) (string, error)

	DeleteFile(ctx context.Context, key string) error

	// FileURL returns the public URL of a stored key
	FileURL(key string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func (s *fileServiceImpl) StoreAttendancePhoto(ctx context.Context, internID string, date time.Time, kind string, encoded string) (string, error) {
	raw, err := decodePhoto(encoded)
	if err != nil {
		return "", err
	}

	compressed, err := compressImage(raw, maxStoredSize, minStoredSize)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhoto, err)
	}

	// attendance/{date}/{internID}-{kind}-{uuid}.jpg
	name := fmt.Sprintf("%s-%s-%s.jpg", internID, kind, uuid.New().String())
	key := path.Join("attendance", date.Format("2006-01-02"), name)

	uploaded, err := s.storage.Upload(ctx, bytes.NewReader(compressed), key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance photo: %w", err)
	}

	return uploaded, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func (s *fileServiceImpl) FileURL(key string) string {
	return s.storage.URL(key)
}

// ==================== HELPER FUNCTIONS ====================

// decodePhoto accepts raw base64 or a data:image/...;base64, URL.
func decodePhoto(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		header, payload, ok := strings.Cut(encoded, ",")
		if !ok || !strings.HasPrefix(header, "data:image/") {
			return nil, ErrInvalidPhoto
		}
		encoded = payload
	}

	if base64.StdEncoding.DecodedLen(len(encoded)) > maxPhotoBytes {
		return nil, ErrPhotoTooLarge
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidPhoto
	}
	return raw, nil
}

// compressImage re-encodes an image as JPEG, lowering quality and then
// scaling down until it fits maxSize. Images already inside
// [minSize, maxSize] are re-encoded once so the stored file is always JPEG.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
		if len(compressed) <= maxSize {
			return compressed, nil
		}
	}

	// Still too large: scale towards the middle of the target range.
	bounds := img.Bounds()
	target := float64(maxSize+minSize) / 2
	ratio := math.Sqrt(target / float64(len(compressed)))
	width := max(int(float64(bounds.Dx())*ratio), 1)
	height := max(int(float64(bounds.Dy())*ratio), 1)

	return encodeJPEG(resizeImage(img, width, height), 70)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
