package extraction

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/frahmantamala/talent-intake/internal"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temporary files.
const multipartMemory = 8 << 20

// ParseMultipart bounds the request body and parses the multipart form.
// files is the number of file fields the endpoint accepts.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64, files int) error {
	if maxBytes > 0 {
		// room for the files plus form overhead
		r.Body = http.MaxBytesReader(w, r.Body, int64(files)*maxBytes+(1<<20))
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return internal.ErrFileTooLarge
		}
		return internal.NewValidationError("invalid multipart body", internal.ErrCodeInvalidBody).WithCause(err)
	}
	return nil
}

// FormFile returns the named file as an Upload. The caller closes the
// returned file.
func FormFile(r *http.Request, field string) (Upload, multipart.File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return Upload{}, nil, internal.NewValidationFieldError(field, field+" file is required", internal.ErrCodeValidationFailed)
		}
		return Upload{}, nil, internal.NewValidationError("invalid multipart body", internal.ErrCodeInvalidBody).WithCause(err)
	}

	return Upload{
		Filename: strings.TrimSpace(header.Filename),
		Size:     header.Size,
		Body:     file,
	}, file, nil
}
