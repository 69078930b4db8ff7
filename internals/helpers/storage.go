// file: internals/helpers/storage.go
package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"schooldocs_backend/internals/configs"
)

const (
	BucketDocuments = "documents"
	BucketLogos     = "school-logos"

	MaxLogoBytes = 2 << 20
	LogoMaxSide  = 512
)

var ErrStorageDisabled = errors.New("supabase storage is not configured")

var storageClient = &http.Client{Timeout: 30 * time.Second}

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeFilename.ReplaceAllString(filename, "_")
}

// GenerateUniqueFilename → "<folder>/<yyyymmdd>-<uuid>-<name>"
func GenerateUniqueFilename(folder, originalFilename string) string {
	return fmt.Sprintf("%s/%s-%s-%s",
		strings.Trim(folder, "/"),
		time.Now().Format("20060102"),
		uuid.New().String(),
		sanitizeFilename(originalFilename),
	)
}

func storageKey() string {
	if configs.SupabaseServiceRoleKey != "" {
		return configs.SupabaseServiceRoleKey
	}
	return configs.SupabaseAnonKey
}

// PublicURL of an object in a public bucket.
func PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		strings.TrimRight(configs.SupabaseURL, "/"), bucket, escapePath(path))
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	return strings.Join(parts, "/")
}

// UploadToSupabase PUTs data into bucket/path (upsert) and returns the public URL.
func UploadToSupabase(ctx context.Context, bucket, path, contentType string, data []byte) (string, error) {
	if !configs.StorageEnabled() {
		return "", ErrStorageDisabled
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		strings.TrimRight(configs.SupabaseURL, "/"), bucket, escapePath(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+storageKey())
	req.Header.Set("apikey", storageKey())
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := storageClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		zap.L().Warn("supabase upload rejected",
			zap.String("bucket", bucket),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return "", fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	zap.L().Debug("supabase upload ok", zap.String("bucket", bucket), zap.String("path", path), zap.Int("bytes", len(data)))
	return PublicURL(bucket, path), nil
}

func DeleteFromSupabase(ctx context.Context, bucket, path string) error {
	if !configs.StorageEnabled() {
		return ErrStorageDisabled
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		strings.TrimRight(configs.SupabaseURL, "/"), bucket, escapePath(path))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+storageKey())
	req.Header.Set("apikey", storageKey())

	resp, err := storageClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete failed with status %d", resp.StatusCode)
	}
	return nil
}

// ExtractSupabasePath splits a public object URL into bucket and path.
func ExtractSupabasePath(fullURL string) (bucket, path string, err error) {
	u, err := url.Parse(fullURL)
	if err != nil {
		return "", "", err
	}
	parts := strings.SplitN(u.Path, "/object/public/", 2)
	if len(parts) < 2 {
		return "", "", errors.New("not a supabase public object url")
	}
	rest, err := url.PathUnescape(parts[1])
	if err != nil {
		return "", "", err
	}
	seg := strings.SplitN(rest, "/", 2)
	if len(seg) < 2 || seg[0] == "" || seg[1] == "" {
		return "", "", errors.New("not a supabase public object url")
	}
	return seg[0], seg[1], nil
}

/* ===============================
   Images
=================================*/

// ConvertToWebP decodes a jpeg/png, fits it into maxSide×maxSide and
// encodes it as lossy webp.
func ConvertToWebP(r io.Reader, maxSide int) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if maxSide > 0 {
		b := img.Bounds()
		if b.Dx() > maxSide || b.Dy() > maxSide {
			img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
		}
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 82}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// UploadImageAsWebP converts a multipart image and stores it under folder.
func UploadImageAsWebP(ctx context.Context, bucket, folder string, fh *multipart.FileHeader, maxSide int) (string, error) {
	if fh.Size > MaxLogoBytes {
		return "", fmt.Errorf("image exceeds %d KB", MaxLogoBytes>>10)
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer src.Close()

	data, err := ConvertToWebP(src, maxSide)
	if err != nil {
		return "", err
	}
	name := strings.TrimSuffix(fh.Filename, extOf(fh.Filename)) + ".webp"
	return UploadToSupabase(ctx, bucket, GenerateUniqueFilename(folder, name), "image/webp", data)
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}
