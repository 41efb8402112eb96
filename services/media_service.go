package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"tindahan_server/lib"
	"tindahan_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// Media buckets. Each bucket maps to a subdirectory under the upload root
// so product shots, swatch photos and attribute documents stay separated.
const (
	BucketProducts       = "products"
	BucketVariants       = "variants"
	BucketSizeGuides     = "size_guides"
	BucketCertifications = "certifications"
)

var mediaExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// MediaService stores uploaded images on the local filesystem and serves
// them back by URL. Files are written to a temp name first and renamed so
// readers never observe partial writes.
type MediaService struct {
	logger *gecho.Logger
	config *structs.Config
}

func NewMediaService(logger *gecho.Logger, cfg *structs.Config) *MediaService {
	return &MediaService{
		logger: logger,
		config: cfg,
	}
}

// Store persists image bytes under the given bucket and returns the public URL.
func (ms *MediaService) Store(data []byte, contentType, bucket string) (string, error) {
	ext, ok := mediaExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", lib.NewError(lib.KindUnsupportedMediaType, fmt.Sprintf("unsupported content type: %s", contentType))
	}

	if int64(len(data)) > ms.config.Media.MaxUploadSize {
		return "", lib.NewError(lib.KindPayloadTooLarge,
			fmt.Sprintf("image exceeds maximum upload size of %d bytes", ms.config.Media.MaxUploadSize))
	}

	if len(data) == 0 {
		return "", lib.NewError(lib.KindInvalidEncoding, "empty image payload")
	}

	key := fmt.Sprintf("%s_%s.%s",
		time.Now().UTC().Format("20060102"),
		strings.ReplaceAll(uuid.New().String(), "-", ""),
		ext,
	)

	dir := filepath.Join(ms.config.Media.UploadRoot, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", lib.WrapError(lib.KindStorageUnavailable, "failed to prepare upload directory", err)
	}

	final := filepath.Join(dir, key)
	tmp := final + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", lib.WrapError(lib.KindStorageUnavailable, "failed to write image", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", lib.WrapError(lib.KindStorageUnavailable, "failed to finalize image", err)
	}

	url := fmt.Sprintf("%s/%s/%s", ms.config.Media.PublicPrefix, bucket, key)

	ms.logger.Debug("Stored media file",
		gecho.Field("bucket", bucket),
		gecho.Field("key", key),
		gecho.Field("size", len(data)),
	)

	return url, nil
}

// StoreDataURL decodes a base64 data URL ("data:image/png;base64,...") and
// stores the decoded image in the given bucket.
func (ms *MediaService) StoreDataURL(dataURL, bucket string) (string, error) {
	contentType, payload, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}
	return ms.Store(payload, contentType, bucket)
}

// IngestImageRef normalizes an image reference from a client payload. Data
// URLs are decoded and stored; URLs under the public prefix are accepted only
// when the file they point at actually exists; empty strings stay empty.
func (ms *MediaService) IngestImageRef(ref, bucket string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}
	if strings.HasPrefix(ref, "data:") {
		return ms.StoreDataURL(ref, bucket)
	}
	if strings.HasPrefix(ref, ms.config.Media.PublicPrefix+"/") {
		if !ms.StoredURLExists(ref) {
			return "", lib.NewError(lib.KindInvalidEncoding, "image reference does not point at stored media")
		}
		return ref, nil
	}
	return "", lib.NewError(lib.KindInvalidEncoding, "image reference must be a data URL or an uploaded media URL")
}

// StoredURLExists reports whether a public media URL maps to a file on disk.
func (ms *MediaService) StoredURLExists(url string) bool {
	rel, ok := strings.CutPrefix(url, ms.config.Media.PublicPrefix+"/")
	if !ok {
		return false
	}

	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return false
	}

	info, err := os.Stat(filepath.Join(ms.config.Media.UploadRoot, rel))
	return err == nil && info.Mode().IsRegular()
}

// Resolve maps a public media URL back to the stored file contents and its
// content type. Used by the read-through media handler.
func (ms *MediaService) Resolve(url string) ([]byte, string, error) {
	rel, ok := strings.CutPrefix(url, ms.config.Media.PublicPrefix+"/")
	if !ok {
		return nil, "", lib.NewError(lib.KindNotFound, "media not found")
	}

	// Reject traversal attempts before touching the filesystem
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return nil, "", lib.NewError(lib.KindNotFound, "media not found")
	}

	path := filepath.Join(ms.config.Media.UploadRoot, rel)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", lib.NewError(lib.KindNotFound, "media not found")
		}
		return nil, "", lib.WrapError(lib.KindStorageUnavailable, "failed to read media", err)
	}

	contentType := contentTypeForExtension(filepath.Ext(path))
	return data, contentType, nil
}

// parseDataURL splits a data URL into its content type and decoded payload
func parseDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, lib.NewError(lib.KindInvalidEncoding, "not a data URL")
	}

	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, lib.NewError(lib.KindInvalidEncoding, "malformed data URL")
	}

	contentType, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" {
		return "", nil, lib.NewError(lib.KindInvalidEncoding, "data URL must be base64 encoded")
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, lib.WrapError(lib.KindInvalidEncoding, "invalid base64 payload", err)
	}

	return contentType, payload, nil
}

func contentTypeForExtension(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
