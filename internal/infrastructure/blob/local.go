package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/brecho-pos/internal/application/ports"
	"github.com/jhoicas/brecho-pos/internal/domain"
)

var _ ports.BlobStore = (*LocalStore)(nil)

// LocalStore guarda las imágenes en disco; útil en desarrollo y con el driver memory.
// El servidor HTTP expone Dir bajo PublicBaseURL.
type LocalStore struct {
	dir           string
	publicBaseURL string
}

// NewLocalStore crea el directorio si no existe.
func NewLocalStore(dir, publicBaseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: crear directorio %s: %v", domain.ErrBlobStorage, dir, err)
	}
	return &LocalStore{dir: dir, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

// Dir directorio raíz de los objetos.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Upload(ctx context.Context, key, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrBlobStorage, err)
	}
	clean := filepath.Clean("/" + key)[1:]
	if clean == "" || clean == "." {
		return "", fmt.Errorf("%w: clave vacía", domain.ErrBlobStorage)
	}
	path := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrBlobStorage, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		if os.IsPermission(err) {
			return "", fmt.Errorf("%w: %v", domain.ErrBlobPolicy, err)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrBlobStorage, err)
	}
	return s.publicBaseURL + "/" + filepath.ToSlash(clean), nil
}
