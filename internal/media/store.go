package media

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrBadExtension = errors.New("file extension not allowed")

// allowed mirrors the upload filter: images only.
var allowed = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Store writes uploaded files under a single directory and hands back the
// public path they are served from.
type Store struct {
	dir     string
	baseURL string
}

func NewStore(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save stores the upload under a random name, keeping only the original
// extension. Returns the public URL path of the stored file.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))

	if !allowed[ext] {
		return "", ErrBadExtension
	}

	name := uuid.NewString() + ext

	src, err := fh.Open()

	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}

	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))

	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}

	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}

	return s.baseURL + "/media/" + name, nil
}

// Dir is the directory static serving should mount.
func (s *Store) Dir() string {
	return s.dir
}
