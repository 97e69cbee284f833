package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/xid"
)

// Storage persists photo bytes and hands back the reference clients store in a
// place's photo list.
type Storage interface {
	UploadImage(ctx context.Context, ext, contentType string, file io.Reader, size int64) (string, error)
	DeleteImage(ctx context.Context, ref string) error
}

const DefaultExt = ".jpg"

// NewObjectName returns "<unix millis>-<xid><ext>". xid keeps names unique across
// concurrent requests within the same millisecond.
func NewObjectName(ext string) string {
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), xid.New().String(), ext)
}

// ExtFromFilename lower-cases the client filename's extension, ".jpg" when missing.
func ExtFromFilename(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || ext == "." || strings.ContainsAny(ext, `/\`) {
		return DefaultExt
	}
	return ext
}
