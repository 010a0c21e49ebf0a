package controllers

import (
	"io"
	"mime/multipart"
	"net/http"

	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
)

// multipart bodies buffer to disk past this point
const multipartMemoryLimit = 32 << 20

// readMultipartImages parses an image upload form. Files arrive under the
// "images" field; the whole body is capped at maxUploadMB before parsing.
func readMultipartImages(w http.ResponseWriter, r *http.Request, maxUploadMB int) ([][]byte, error) {
	if maxUploadMB > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, int64(maxUploadMB)<<20)
	}
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	return readFormImages(r.MultipartForm)
}

func readFormImages(form *multipart.Form) ([][]byte, error) {
	if form == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "multipart form required")
	}
	files := form.File["images"]
	images := make([][]byte, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open uploaded image")
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded image")
		}
		images = append(images, data)
	}
	return images, nil
}

func formValue(form *multipart.Form, key string) string {
	if form == nil {
		return ""
	}
	values := form.Value[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
