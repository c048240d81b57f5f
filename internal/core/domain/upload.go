package domain

// UploadedFile is a pre-validated multipart upload: the driving adapter
// enforces size and content-type limits before this value is constructed,
// so the core never inspects raw multipart encoding.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}
