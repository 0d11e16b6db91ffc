package dogs

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
)

// DefaultMaxImageBytes es el límite por defecto (5MB).
const DefaultMaxImageBytes int64 = 5 * 1024 * 1024

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// ImageStore guarda los bytes de imagen fuera de la fila del perro.
// Los nombres que devuelve Save son opacos para el dominio.
type ImageStore interface {
	Save(ctx context.Context, contentType string, data []byte) (string, error)
	// Open devuelve ErrNotFound si el archivo no existe.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Delete no falla si el archivo ya no existe.
	Delete(ctx context.Context, name string) error
}

// ImageUpload es una imagen recibida en un request, ya leída en memoria.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size devuelve el tamaño en bytes.
func (u ImageUpload) Size() int64 {
	return int64(len(u.Data))
}

// ValidateImage aplica la política de imágenes: tipo declarado en
// jpeg/png/gif (case-insensitive), contenido real coincidente y tamaño
// máximo maxBytes. Devuelve el content type normalizado.
func ValidateImage(u ImageUpload, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}

	declared := strings.ToLower(strings.TrimSpace(u.ContentType))
	if mt, _, err := mime.ParseMediaType(declared); err == nil {
		declared = mt
	}
	if _, ok := allowedImageTypes[declared]; !ok {
		return "", fmt.Errorf("%w: %q is not allowed (jpeg, png, gif only)", ErrImageType, u.ContentType)
	}

	if u.Size() == 0 {
		return "", fmt.Errorf("%w: image is empty", ErrInvalidInput)
	}
	if u.Size() > maxBytes {
		return "", imageTooLarge(maxBytes)
	}

	// El content type declarado lo elige el cliente; verificamos magic bytes.
	if sniffed := http.DetectContentType(u.Data); sniffed != declared {
		return "", fmt.Errorf("%w: content is %s, declared %s", ErrImageType, sniffed, declared)
	}

	return declared, nil
}

func imageTooLarge(maxBytes int64) error {
	return fmt.Errorf("%w: image exceeds %s", ErrImageTooLarge, humanize.IBytes(uint64(maxBytes)))
}
