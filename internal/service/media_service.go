package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/metrics"
	"github.com/revanew/site/internal/store"
)

var (
	ErrUploadMissing  = errors.New("no file uploaded")
	ErrUploadNotImage = errors.New("only image files can be uploaded")
	ErrUploadTooLarge = errors.New("image exceeds the upload size limit")
)

// MediaService stores uploaded images on disk and records them in the media library.
type MediaService struct {
	store    *store.Client
	log      *zap.SugaredLogger
	dir      string
	urlPath  string
	maxBytes int64
	now      func() time.Time
}

// NewMediaService returns a MediaService writing into dir and serving under urlPath.
func NewMediaService(client *store.Client, log *zap.SugaredLogger, dir, urlPath string, maxBytes int64) *MediaService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &MediaService{
		store:    client,
		log:      log,
		dir:      dir,
		urlPath:  "/" + strings.Trim(urlPath, "/"),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// MaxBytes returns the configured upload limit.
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates the declared type and size of file, writes it under a
// collision-resistant name and returns the recorded asset. Rejected files are
// never written.
func (s *MediaService) Save(ctx context.Context, file *multipart.FileHeader, actor string) (*db.MediaAsset, error) {
	if file == nil {
		metrics.Uploads.WithLabelValues("rejected").Inc()
		return nil, ErrUploadMissing
	}

	contentType := strings.ToLower(strings.TrimSpace(file.Header.Get("Content-Type")))
	if !strings.HasPrefix(contentType, "image/") {
		metrics.Uploads.WithLabelValues("rejected").Inc()
		return nil, ErrUploadNotImage
	}
	if file.Size > s.maxBytes {
		metrics.Uploads.WithLabelValues("rejected").Inc()
		return nil, ErrUploadTooLarge
	}

	asset, err := s.write(file, contentType)
	if err != nil {
		metrics.Uploads.WithLabelValues("failed").Inc()
		if errors.Is(err, ErrUploadTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("store upload: %w", err)
	}
	asset.UploadedBy = actor

	// 未配置存储时仍保留文件，只是不进入媒体库
	if gdb, err := s.store.Write(ctx); err != nil {
		s.log.Warnw("media asset not recorded", "file", asset.FileName, "err", err)
	} else if err := gdb.Create(asset).Error; err != nil {
		metrics.Uploads.WithLabelValues("failed").Inc()
		if rmErr := os.Remove(filepath.Join(s.dir, asset.FileName)); rmErr != nil {
			s.log.Errorw("remove unrecorded upload", "file", asset.FileName, "err", rmErr)
		}
		return nil, fmt.Errorf("record upload: %w", err)
	}

	metrics.Uploads.WithLabelValues("accepted").Inc()
	return asset, nil
}

// List returns recorded uploads, newest first.
func (s *MediaService) List(ctx context.Context, limit int) ([]db.MediaAsset, error) {
	gdb, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}
	var assets []db.MediaAsset
	if err := gdb.Order("created_at desc, id desc").Limit(limit).Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (s *MediaService) write(file *multipart.FileHeader, contentType string) (*db.MediaAsset, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	name := s.fileName(file.Filename)
	target := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}

	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	closeErr := dst.Close()
	if err == nil && written > s.maxBytes {
		err = ErrUploadTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(target)
		return nil, err
	}

	asset := &db.MediaAsset{
		FileName:    name,
		PublicPath:  path.Join(s.urlPath, name),
		ContentType: contentType,
		SizeBytes:   written,
		CreatedAt:   s.now().UTC(),
	}
	asset.Width, asset.Height = imageDimensions(target)
	return asset, nil
}

// fileName builds <unix millis>-<random hex><ext> from the original name.
func (s *MediaService) fileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		ext = ""
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), suffix, ext)
}

// imageDimensions reads the image header; undecodable files report 0x0.
func imageDimensions(file string) (int, int) {
	f, err := os.Open(file)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
