package inventory

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/brecho-pos/internal/application/ports"
	"github.com/jhoicas/brecho-pos/internal/domain"
)

const dataImagePrefix = "data:image"

// IsDataImage indica si image es un payload data:image/... que debe subirse al almacenamiento.
func IsDataImage(image string) bool {
	return strings.HasPrefix(image, dataImagePrefix)
}

// decodeDataURL separa un data URL en content type y bytes. Solo se acepta codificación base64.
func decodeDataURL(image string) (string, []byte, error) {
	header, payload, ok := strings.Cut(image, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: imagen sin contenido", domain.ErrInvalidInput)
	}
	meta := strings.TrimPrefix(header, "data:")
	contentType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", nil, fmt.Errorf("%w: la imagen debe venir en base64", domain.ErrInvalidInput)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: base64 de imagen inválido", domain.ErrInvalidInput)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("%w: imagen vacía", domain.ErrInvalidInput)
	}
	return contentType, data, nil
}

// resolveImage sube el payload cuando es un data URL y devuelve la URL pública;
// cualquier otra referencia se devuelve sin cambios.
func resolveImage(ctx context.Context, store ports.BlobStore, image string) (string, error) {
	if !IsDataImage(image) {
		return image, nil
	}
	contentType, data, err := decodeDataURL(image)
	if err != nil {
		return "", err
	}
	if store == nil {
		return "", fmt.Errorf("%w: almacenamiento de imágenes no configurado", domain.ErrBlobStorage)
	}
	key := uuid.New().String() + ".png"
	return store.Upload(ctx, key, contentType, data)
}
