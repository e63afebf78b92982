package dto

// FileUpload carries an uploaded file's bytes and metadata from the HTTP
// layer down to the expense service.
type FileUpload struct {
	FileName string
	MimeType string
	Size     int64
	Data     []byte
}
