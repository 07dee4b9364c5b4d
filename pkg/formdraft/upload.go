package formdraft

import (
	"errors"
	"io"
	"mime/multipart"
)

// ErrUploadTooLarge dosya izin verilen boyutu aşıyor.
var ErrUploadTooLarge = errors.New("dosya çok büyük")

// UploadFromFileHeader multipart dosyasını belleğe okur. maxBytes <= 0 ise sınır yoktur.
func UploadFromFileHeader(fh *multipart.FileHeader, maxBytes int) (*Upload, error) {
	if maxBytes > 0 && fh.Size > int64(maxBytes) {
		return nil, ErrUploadTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, int64(maxBytes)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return nil, ErrUploadTooLarge
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Upload{FileName: fh.Filename, ContentType: contentType, Data: data}, nil
}
