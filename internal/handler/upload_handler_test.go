package handler_test

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
)

func multipartUpload(t *testing.T, filename, contentType string, body []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(body); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func uploadedFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read upload dir: %v", err)
	}
	return len(entries)
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	env := setupHandlerTest(t)
	cookie := env.adminCookie(t)

	w := env.do(multipartUpload(t, "notes.pdf", "application/pdf", []byte("%PDF-1.4")), cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if uploadedFiles(t, env.uploadDir) != 0 {
		t.Fatal("non-image upload must not be written")
	}
}

func TestUploadImageRejectsOversize(t *testing.T) {
	env := setupHandlerTest(t)
	cookie := env.adminCookie(t)

	body := bytes.Repeat([]byte{0xff}, 10485761)
	w := env.do(multipartUpload(t, "huge.jpg", "image/jpeg", body), cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "size limit") {
		t.Fatalf("expected size message, got %s", w.Body.String())
	}
	if uploadedFiles(t, env.uploadDir) != 0 {
		t.Fatal("oversized upload must not be written")
	}
}

func TestUploadImageAcceptsExactLimit(t *testing.T) {
	env := setupHandlerTest(t)
	cookie := env.adminCookie(t)

	const limit = 10 << 20
	body := bytes.Repeat([]byte{0xff}, limit)
	w := env.do(multipartUpload(t, "limit.jpg", "image/jpeg", body), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 at exactly %d bytes, got %d: %s", limit, w.Code, w.Body.String())
	}

	entries, err := os.ReadDir(env.uploadDir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one stored file, got %d", len(entries))
	}
	info, err := entries[0].Info()
	if err != nil {
		t.Fatalf("stat upload: %v", err)
	}
	if info.Size() != limit {
		t.Fatalf("expected %d bytes on disk, got %d", limit, info.Size())
	}
}

func TestUploadImageMissingFile(t *testing.T) {
	env := setupHandlerTest(t)
	cookie := env.adminCookie(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/api/upload", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	if w := env.do(req, cookie); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUploadImageRequiresAdmin(t *testing.T) {
	env := setupHandlerTest(t)

	w := env.do(multipartUpload(t, "a.png", "image/png", []byte("png")))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestUploadImageSucceeds(t *testing.T) {
	env := setupHandlerTest(t)
	cookie := env.adminCookie(t)

	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	w := env.do(multipartUpload(t, "hero.png", "image/png", img.Bytes()), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	imageURL, _ := decodeJSON(t, w)["imageUrl"].(string)
	if !strings.HasPrefix(imageURL, "/uploads/") || !strings.HasSuffix(imageURL, ".png") {
		t.Fatalf("unexpected imageUrl %q", imageURL)
	}
	if uploadedFiles(t, env.uploadDir) != 1 {
		t.Fatal("expected exactly one stored file")
	}

	w = env.get("/admin/api/media", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("list media: %d", w.Code)
	}
	if assets := decodeJSON(t, w)["assets"].([]interface{}); len(assets) != 1 {
		t.Fatalf("expected one media asset, got %d", len(assets))
	}
}
