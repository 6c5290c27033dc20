package blob

import "context"

// Object references a file held in external object storage. Handle is the
// opaque key used for later deletion; URL is durable and publicly readable.
type Object struct {
	FileName string `json:"original_name"`
	URL      string `json:"url"`
	Handle   string `json:"storage_key"`
}

type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Store is the blob storage collaborator. Uploads are synchronous; a failed
// upload fails the surrounding request, nothing is retried here.
type Store interface {
	Upload(ctx context.Context, upload Upload) (*Object, error)
	Remove(ctx context.Context, handle string) error
}
