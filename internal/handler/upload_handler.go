package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/revanew/site/internal/auth"
	"github.com/revanew/site/internal/service"
)

// uploadFormOverhead leaves room for multipart boundaries and headers on top
// of the file itself.
const uploadFormOverhead = 1 << 20

// UploadImage 处理图片上传请求
func (a *API) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, a.media.MaxBytes()+uploadFormOverhead)

	// 获取上传的文件
	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusBadRequest, service.ErrUploadTooLarge.Error())
			return
		}
		respondError(c, http.StatusBadRequest, service.ErrUploadMissing.Error())
		return
	}

	asset, err := a.media.Save(c.Request.Context(), file, auth.Actor(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadNotImage),
			errors.Is(err, service.ErrUploadTooLarge),
			errors.Is(err, service.ErrUploadMissing):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			a.log.Errorw("save upload", "file", file.Filename, "err", err)
			respondError(c, http.StatusInternalServerError, "failed to upload image")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imageUrl": asset.PublicPath,
		"message":  "image uploaded",
	})
}

// ListMedia 返回媒体库
func (a *API) ListMedia(c *gin.Context) {
	limit := parsePositiveInt(c.DefaultQuery("limit", "100"), 100)
	assets, err := a.media.List(c.Request.Context(), limit)
	if err != nil {
		a.respondServiceError(c, err, "failed to list media")
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}
