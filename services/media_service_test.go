package services_test

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/MonkyMars/gecho"

	"tindahan_server/lib"
	"tindahan_server/services"
	"tindahan_server/structs"
)

// onePixelPNG is a valid 1x1 transparent PNG.
var onePixelPNG, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg==")

func mediaService(t *testing.T) *services.MediaService {
	t.Helper()
	cfg := &structs.Config{
		Media: &structs.MediaConfig{
			UploadRoot:    t.TempDir(),
			PublicPrefix:  "/uploads",
			MaxUploadSize: 1 << 20,
		},
	}
	return services.NewMediaService(gecho.NewDefaultLogger(), cfg)
}

func TestMediaService_StoreAndResolve(t *testing.T) {
	ms := mediaService(t)

	url, err := ms.Store(onePixelPNG, "image/png", services.BucketProducts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(url, "/uploads/products/") {
		t.Fatalf("unexpected url: %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("extension not derived from content type: %q", url)
	}
	key := url[strings.LastIndex(url, "/")+1:]
	if strings.Contains(key, "-") {
		t.Fatalf("key should not contain dashes: %q", key)
	}

	data, contentType, err := ms.Resolve(url)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, onePixelPNG) {
		t.Fatal("stored bytes do not round-trip")
	}
	if contentType != "image/png" {
		t.Fatalf("content type: %q", contentType)
	}
}

func TestMediaService_StoreRejections(t *testing.T) {
	ms := mediaService(t)

	if _, err := ms.Store(onePixelPNG, "text/plain", services.BucketProducts); !lib.IsKind(err, lib.KindUnsupportedMediaType) {
		t.Fatalf("want unsupported_media_type, got %v", err)
	}
	if _, err := ms.Store(nil, "image/png", services.BucketProducts); !lib.IsKind(err, lib.KindInvalidEncoding) {
		t.Fatalf("want invalid_encoding for empty payload, got %v", err)
	}
}

func TestMediaService_StoreOversize(t *testing.T) {
	cfg := &structs.Config{
		Media: &structs.MediaConfig{
			UploadRoot:    t.TempDir(),
			PublicPrefix:  "/uploads",
			MaxUploadSize: 8,
		},
	}
	ms := services.NewMediaService(gecho.NewDefaultLogger(), cfg)

	if _, err := ms.Store(onePixelPNG, "image/png", services.BucketProducts); !lib.IsKind(err, lib.KindPayloadTooLarge) {
		t.Fatalf("want payload_too_large, got %v", err)
	}
}

func TestMediaService_StoreDataURL(t *testing.T) {
	ms := mediaService(t)
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(onePixelPNG)

	url, err := ms.StoreDataURL(dataURL, services.BucketVariants)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(url, "/uploads/variants/") {
		t.Fatalf("unexpected url: %q", url)
	}

	cases := []string{
		"image/png;base64,abcd",             // missing data: scheme
		"data:image/png;base64",             // no payload separator
		"data:image/png,abcd",               // not base64
		"data:image/png;base64,not-base64!", // invalid base64
	}
	for _, bad := range cases {
		if _, err := ms.StoreDataURL(bad, services.BucketVariants); !lib.IsKind(err, lib.KindInvalidEncoding) {
			t.Fatalf("%q: want invalid_encoding, got %v", bad, err)
		}
	}
}

func TestMediaService_IngestImageRef(t *testing.T) {
	ms := mediaService(t)

	if url, err := ms.IngestImageRef("", services.BucketProducts); err != nil || url != "" {
		t.Fatalf("empty ref: %q, %v", url, err)
	}

	// URLs of files that were actually uploaded pass through untouched.
	existing, err := ms.Store(onePixelPNG, "image/png", services.BucketProducts)
	if err != nil {
		t.Fatal(err)
	}
	if url, err := ms.IngestImageRef(existing, services.BucketProducts); err != nil || url != existing {
		t.Fatalf("pass-through: %q, %v", url, err)
	}

	// An uploads-prefixed URL with no file behind it is rejected.
	if _, err := ms.IngestImageRef("/uploads/products/20260101_gone.png", services.BucketProducts); !lib.IsKind(err, lib.KindInvalidEncoding) {
		t.Fatalf("dangling ref: want invalid_encoding, got %v", err)
	}
	if _, err := ms.IngestImageRef("/uploads/../secrets.txt", services.BucketProducts); !lib.IsKind(err, lib.KindInvalidEncoding) {
		t.Fatalf("traversal ref: want invalid_encoding, got %v", err)
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(onePixelPNG)
	url, err := ms.IngestImageRef(dataURL, services.BucketProducts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(url, "/uploads/products/") {
		t.Fatalf("data URL not ingested: %q", url)
	}

	if _, err := ms.IngestImageRef("https://elsewhere.example/x.png", services.BucketProducts); !lib.IsKind(err, lib.KindInvalidEncoding) {
		t.Fatalf("foreign URL: want invalid_encoding, got %v", err)
	}
}

func TestMediaService_ResolveRejections(t *testing.T) {
	ms := mediaService(t)

	cases := []string{
		"/elsewhere/products/x.png",
		"/uploads/products/missing.png",
		"/uploads/../secrets.txt",
		"/uploads/products/../../../etc/passwd",
	}
	for _, url := range cases {
		if _, _, err := ms.Resolve(url); !lib.IsKind(err, lib.KindNotFound) {
			t.Fatalf("%q: want not_found, got %v", url, err)
		}
	}
}
