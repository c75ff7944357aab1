package service

import (
	"Quill/internal/api/config"
	"Quill/internal/api/dto"
	"Quill/internal/pkg/minio"
	"Quill/internal/pkg/util"
	"bytes"
	"context"
	"image"
	"io"
	log "log/slog"
	"time"

	"github.com/disintegration/imaging"
)

const (
	sniffLen = 512
	// defaultMaxPixels 未配置 max_pixels 时的解码像素上限
	defaultMaxPixels = 40_000_000
)

type MediaService interface {
	UploadCover(ctx context.Context, filename string, reader io.Reader) (*dto.CoverDTO, error)
}

type mediaServiceImpl struct {
	store         minio.ObjectStore
	maxBytes      int64
	maxCoverWidth int
	maxPixels     int64
}

// NewMediaService store 为 nil 时上传不可用
func NewMediaService(store minio.ObjectStore, cfg config.MinIOConfig) MediaService {
	return &mediaServiceImpl{
		store:         store,
		maxBytes:      cfg.MaxUploadMB << 20,
		maxCoverWidth: cfg.MaxCoverWidth,
		maxPixels:     cfg.MaxPixels,
	}
}

// UploadCover 校验图片、按最大宽度等比缩放后存储，返回可直接用作 coverImageURL 的地址
func (s *mediaServiceImpl) UploadCover(ctx context.Context, filename string, reader io.Reader) (*dto.CoverDTO, error) {
	if s.store == nil {
		return nil, ErrFeatureDisabled
	}

	data, err := io.ReadAll(io.LimitReader(reader, s.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	mimeType, ext, ok := util.DetectImageType(head)
	if !ok {
		log.WarnContext(ctx, "rejected cover upload", "filename", filename, "mime", mimeType)
		return nil, ErrFileNotSupported
	}

	// 先读头部尺寸，高压缩比的大图在完整解码前拒绝
	conf, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrFileNotSupported
	}
	if int64(conf.Width)*int64(conf.Height) > s.pixelBudget() {
		log.WarnContext(ctx, "rejected cover upload", "filename", filename, "width", conf.Width, "height", conf.Height)
		return nil, ErrFileTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrFileNotSupported
	}
	if s.maxCoverWidth > 0 && img.Bounds().Dx() > s.maxCoverWidth {
		img = imaging.Resize(img, s.maxCoverWidth, 0, imaging.Lanczos)
	}

	// GIF 只取首帧，统一存为 PNG
	format := imaging.PNG
	if mimeType == "image/jpeg" {
		format = imaging.JPEG
	} else {
		mimeType, ext = "image/png", ".png"
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, err
	}

	objectName := minio.CoverObjectName(util.BaseName(filename), ext, time.Now())
	url, err := s.store.UploadFile(ctx, objectName, &buf, int64(buf.Len()), mimeType)
	if err != nil {
		return nil, err
	}

	return &dto.CoverDTO{
		URL:    url,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func (s *mediaServiceImpl) pixelBudget() int64 {
	if s.maxPixels > 0 {
		return s.maxPixels
	}
	return defaultMaxPixels
}
