package photo

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// File is the minimal surface the controller needs from a user-selected file:
// declared content type, byte size, and a way to read the payload once.
type File interface {
	Name() string
	ContentType() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// BytesFile is an in-memory File, used by tests and callers that already hold
// the payload.
type BytesFile struct {
	FileName string
	MIME     string
	Data     []byte
}

func (f BytesFile) Name() string        { return f.FileName }
func (f BytesFile) ContentType() string { return f.MIME }
func (f BytesFile) Size() int64         { return int64(len(f.Data)) }

func (f BytesFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.Data)), nil
}

// FromBytes wraps an in-memory payload as a File.
func FromBytes(name, mime string, data []byte) BytesFile {
	return BytesFile{FileName: name, MIME: mime, Data: data}
}

// FromPath stats a file on disk and sniffs its content type from the leading
// bytes, falling back to the extension when sniffing is inconclusive.
func FromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("photo: stat %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("photo: open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("photo: read %s: %w", path, err)
	}
	mime := http.DetectContentType(head[:n])
	if idx := strings.Index(mime, ";"); idx != -1 {
		mime = strings.TrimSpace(mime[:idx])
	}
	if mime == "application/octet-stream" {
		if byExt := extensionMIME(filepath.Ext(path)); byExt != "" {
			mime = byExt
		}
	}

	return &pathFile{path: path, mime: mime, size: info.Size()}, nil
}

type pathFile struct {
	path string
	mime string
	size int64
}

func (f *pathFile) Name() string        { return filepath.Base(f.path) }
func (f *pathFile) ContentType() string { return f.mime }
func (f *pathFile) Size() int64         { return f.size }

func (f *pathFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

func extensionMIME(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}
