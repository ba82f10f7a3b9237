package documenttest

import (
	"bytes"
	"mime/multipart"
)

// FormFile is one file part of a multipart request body.
type FormFile struct {
	Field    string
	Filename string
	Data     []byte
}

// Multipart encodes files as a multipart/form-data body and returns it with
// its Content-Type header value.
func Multipart(files ...FormFile) (*bytes.Buffer, string) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			panic(err)
		}
		if _, err := part.Write(f.Data); err != nil {
			panic(err)
		}
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return &body, w.FormDataContentType()
}
