package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/brecho-pos/internal/application/ports"
	"github.com/jhoicas/brecho-pos/internal/domain"
)

var _ ports.BlobStore = (*SupabaseStore)(nil)

// SupabaseStore adaptador de Supabase Storage sobre su API REST.
type SupabaseStore struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewSupabaseStore construye el adaptador. baseURL es la URL del proyecto (https://<ref>.supabase.co).
func NewSupabaseStore(baseURL, serviceKey, bucket string) *SupabaseStore {
	return &SupabaseStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sube el objeto con upsert y devuelve su URL pública.
func (s *SupabaseStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if s.baseURL == "" || s.serviceKey == "" {
		return "", fmt.Errorf("%w: SUPABASE_URL o SUPABASE_SERVICE_KEY no configurado", domain.ErrBlobStorage)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, url.PathEscape(s.bucket), escapeKey(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: crear request: %v", domain.ErrBlobStorage, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrBlobStorage, ctx.Err())
		}
		return "", fmt.Errorf("%w: llamada HTTP fallida: %v", domain.ErrBlobStorage, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	if resp.StatusCode/100 != 2 {
		return "", classifyFailure(resp.StatusCode, string(raw))
	}
	return s.PublicURL(key), nil
}

// PublicURL URL pública estable de un objeto del bucket.
func (s *SupabaseStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, url.PathEscape(s.bucket), escapeKey(key))
}

// classifyFailure separa los rechazos de permisos (RLS o política del bucket) del resto.
func classifyFailure(status int, body string) error {
	msg := strings.TrimSpace(body)
	lower := strings.ToLower(msg)
	if status == http.StatusUnauthorized || status == http.StatusForbidden ||
		strings.Contains(lower, "row-level security") || strings.Contains(lower, "policy") {
		return fmt.Errorf("%w: HTTP %d: %s", domain.ErrBlobPolicy, status, msg)
	}
	return fmt.Errorf("%w: HTTP %d: %s", domain.ErrBlobStorage, status, msg)
}

func escapeKey(key string) string {
	parts := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
