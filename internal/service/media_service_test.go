package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/store"
)

// multipartFile builds a FileHeader the way the HTTP layer would receive it.
func multipartFile(t *testing.T, name, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(body)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func dirEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0
		}
		t.Fatalf("read dir: %v", err)
	}
	return len(entries)
}

func TestMediaServiceSaveImage(t *testing.T) {
	_, client := setupServiceTestDB(t)
	dir := t.TempDir()
	svc := NewMediaService(client, nil, dir, "uploads/", 10<<20)
	ctx := context.Background()

	asset, err := svc.Save(ctx, multipartFile(t, "Logo.PNG", "image/png", pngBytes(t, 3, 2)), "admin")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(asset.PublicPath, "/uploads/") || !strings.HasSuffix(asset.PublicPath, ".png") {
		t.Fatalf("unexpected public path %q", asset.PublicPath)
	}
	if asset.Width != 3 || asset.Height != 2 {
		t.Fatalf("expected 3x2, got %dx%d", asset.Width, asset.Height)
	}
	if _, err := os.Stat(filepath.Join(dir, asset.FileName)); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	listed, err := svc.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].UploadedBy != "admin" {
		t.Fatalf("expected recorded asset, got %+v", listed)
	}
}

func TestMediaServiceRejects(t *testing.T) {
	_, client := setupServiceTestDB(t)
	dir := t.TempDir()
	svc := NewMediaService(client, nil, dir, "/uploads", 16)
	ctx := context.Background()

	cases := []struct {
		name string
		file *multipart.FileHeader
		want error
	}{
		{"missing", nil, ErrUploadMissing},
		{"not an image", multipartFile(t, "notes.txt", "text/plain", []byte("hi")), ErrUploadNotImage},
		{"too large", multipartFile(t, "big.png", "image/png", bytes.Repeat([]byte{1}, 17)), ErrUploadTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Save(ctx, tc.file, "admin"); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if n := dirEntries(t, dir); n != 0 {
		t.Fatalf("rejected uploads must not be written, found %d files", n)
	}
}

func TestMediaServiceSavesWithoutStore(t *testing.T) {
	dir := t.TempDir()
	svc := NewMediaService(store.Placeholder(), nil, dir, "/uploads", 1<<20)

	asset, err := svc.Save(context.Background(), multipartFile(t, "a.png", "image/png", pngBytes(t, 1, 1)), "admin")
	if err != nil {
		t.Fatalf("save without store: %v", err)
	}
	if asset.PublicPath == "" || dirEntries(t, dir) != 1 {
		t.Fatal("expected file written even when the library cannot record it")
	}
}

func TestMediaServiceRemovesFileWhenRecordFails(t *testing.T) {
	gdb, client := setupServiceTestDB(t)
	dir := t.TempDir()
	svc := NewMediaService(client, nil, dir, "/uploads", 1<<20)

	if err := gdb.Migrator().DropTable(&db.MediaAsset{}); err != nil {
		t.Fatalf("drop media table: %v", err)
	}

	if _, err := svc.Save(context.Background(), multipartFile(t, "a.png", "image/png", pngBytes(t, 1, 1)), "admin"); err == nil {
		t.Fatal("expected error when the asset cannot be recorded")
	}
	if n := dirEntries(t, dir); n != 0 {
		t.Fatalf("unrecorded upload should be removed, found %d files", n)
	}
}
