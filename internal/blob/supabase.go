package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
)

// SupabaseStore talks to the Supabase Storage REST API. The handle of an
// uploaded object is its bucket-relative path.
type SupabaseStore struct {
	baseURL    string
	apiKey     string
	bucket     string
	httpClient *http.Client
}

func NewSupabaseStore(baseURL, apiKey, bucket string, httpClient *http.Client) *SupabaseStore {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SupabaseStore{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		bucket:     strings.TrimSpace(bucket),
		httpClient: httpClient,
	}
}

func (s *SupabaseStore) Upload(ctx context.Context, upload Upload) (*Object, error) {
	if len(upload.Data) == 0 {
		return nil, common.NewError(common.CodeValidation, "empty file", nil)
	}
	key := common.NewUUID().String() + "-" + sanitizeFileName(upload.FileName)
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(upload.Data))
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if upload.ContentType != "" {
		req.Header.Set("Content-Type", upload.ContentType)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send upload request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("storage upload failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return &Object{
		FileName: upload.FileName,
		URL:      fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, url.PathEscape(key)),
		Handle:   key,
	}, nil
}

func (s *SupabaseStore) Remove(ctx context.Context, handle string) error {
	if strings.TrimSpace(handle) == "" {
		return nil
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, url.PathEscape(handle))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send delete request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("storage delete failed: status %d", resp.StatusCode)
	}
	return nil
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == "/" {
		return "file"
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	return cleaned
}
