package dto

// Upload is an uploaded file extracted from a multipart form, already
// read into memory and size/format checked by the handler.
type Upload struct {
	Name string
	Data []byte
}
