package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cmorrow/taskhub/internal/domain"
	"github.com/cmorrow/taskhub/internal/service/images"
)

// multipartSlack is the allowance on top of the image size limit for
// multipart framing (boundaries, part headers).
const multipartSlack = 4096

// normalizeUpload pulls the multipart file out of the named form field and
// runs it through the image pipeline. The whole request body is bounded
// with http.MaxBytesReader before parsing, so an oversized upload is
// refused outright instead of being spooled to a temp file first; uploads
// that fit the body bound but exceed the image limit are caught by the
// pipeline's own size check.
func normalizeUpload(w http.ResponseWriter, r *http.Request, field string, processor *images.Processor) ([]byte, error) {
	limit := processor.MaxBytes() + multipartSlack
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w of %d bytes", images.ErrTooLarge, processor.MaxBytes())
		}
		return nil, fmt.Errorf("%w: invalid multipart form", domain.ErrValidation)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%w: %s file is required", domain.ErrValidation, field)
	}
	defer func() { _ = file.Close() }()

	return processor.Normalize(header.Filename, file)
}

// getPathUUID parses the named chi URL parameter as a UUID.
func getPathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrInvalidID, name)
	}
	return id, nil
}
