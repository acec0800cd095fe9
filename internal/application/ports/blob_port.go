package ports

import "context"

// BlobStore define el puerto de salida para el almacenamiento de imágenes de piezas.
// Cualquier adaptador (Supabase Storage, disco local, mock) debe implementar esta interfaz.
type BlobStore interface {
	// Upload guarda data bajo key y devuelve la URL pública estable del objeto.
	// Un rechazo por permisos o políticas del bucket se devuelve envuelto en domain.ErrBlobPolicy;
	// cualquier otro fallo de almacenamiento en domain.ErrBlobStorage.
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}
