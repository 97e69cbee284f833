package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"

	"github.com/Chamas111/booking-airbnb/internal/config"
	"github.com/Chamas111/booking-airbnb/internal/metrics"
	"github.com/Chamas111/booking-airbnb/internal/storage"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

// UploadFile is one multipart part. Open is called once, in input order.
type UploadFile struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

type PhotoService interface {
	AddByLink(ctx context.Context, link string) (string, error)
	AddByUpload(ctx context.Context, files []UploadFile) ([]string, error)
}

type photoService struct {
	storage storage.Storage
	fetcher Fetcher
	cfg     config.Upload
	logger  zerolog.Logger
}

func NewPhotoService(store storage.Storage, fetcher Fetcher, cfg config.Upload, logger zerolog.Logger) PhotoService {
	return &photoService{
		storage: store,
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
	}
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// linkImageType picks the stored extension and content type for a downloaded
// image: declared type first, then the sniffed bytes, then ".jpg".
func linkImageType(declared string, data []byte) (string, string) {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
		mediaType = strings.ToLower(mediaType)
		if ext, ok := imageExtensions[mediaType]; ok {
			return ext, mediaType
		}
	}

	detected := mimetype.Detect(data)
	if strings.HasPrefix(detected.String(), "image/") && detected.Extension() != "" {
		return detected.Extension(), detected.String()
	}

	return storage.DefaultExt, "image/jpeg"
}

func (s *photoService) AddByLink(ctx context.Context, link string) (string, error) {
	link = strings.TrimSpace(link)
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: link must be an absolute http(s) URL", ErrValidation)
	}

	data, declared, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		if errors.Is(err, ErrFetch) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}

	ext, contentType := linkImageType(declared, data)

	ref, err := s.storage.UploadImage(ctx, ext, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	metrics.IncPhotos("link")
	return ref, nil
}

// AddByUpload stores every part or none: when one part fails, parts already
// written by this call are removed and no references are returned.
func (s *photoService) AddByUpload(ctx context.Context, files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no photos in request", ErrValidation)
	}
	if s.cfg.MaxFiles > 0 && len(files) > s.cfg.MaxFiles {
		return nil, fmt.Errorf("%w: at most %d photos per request", ErrValidation, s.cfg.MaxFiles)
	}
	for _, f := range files {
		if s.cfg.MaxFileSize > 0 && f.Size > s.cfg.MaxFileSize {
			return nil, fmt.Errorf("%w: %s is %s, limit is %s", ErrValidation, f.Filename,
				humanize.IBytes(uint64(f.Size)), humanize.IBytes(uint64(s.cfg.MaxFileSize)))
		}
	}

	refs := make([]string, 0, len(files))
	for _, f := range files {
		ref, err := s.storeOne(ctx, f)
		if err != nil {
			s.cleanup(ctx, refs)
			return nil, err
		}
		refs = append(refs, ref)
	}

	metrics.AddPhotos("upload", len(refs))
	return refs, nil
}

func (s *photoService) storeOne(ctx context.Context, f UploadFile) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("%w: cannot read %s: %v", ErrValidation, f.Filename, err)
	}
	defer rc.Close()

	body, contentType, err := sniff(rc)
	if err != nil {
		return "", fmt.Errorf("%w: cannot read %s: %v", ErrValidation, f.Filename, err)
	}

	ref, err := s.storage.UploadImage(ctx, storage.ExtFromFilename(f.Filename), contentType, body, f.Size)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrStorage, f.Filename, err)
	}

	return ref, nil
}

func (s *photoService) cleanup(ctx context.Context, refs []string) {
	ctx = context.WithoutCancel(ctx)
	for _, ref := range refs {
		if err := s.storage.DeleteImage(ctx, ref); err != nil {
			s.logger.Warn().Err(err).Str("ref", ref).Msg("failed to remove photo after aborted upload")
		}
	}
}

// sniff detects the content type from the leading bytes and returns a reader
// that still yields the whole stream.
func sniff(r io.Reader) (io.Reader, string, error) {
	head := make([]byte, 3072)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, "", err
	}
	head = head[:n]

	return io.MultiReader(bytes.NewReader(head), r), mimetype.Detect(head).String(), nil
}
