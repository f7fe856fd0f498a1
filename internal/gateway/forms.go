package gateway

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"strconv"

	"studyglobe/internal/validation"
)

// File is an upload attached to a form.
type File struct {
	Name    string
	Content []byte
}

// formWriter builds a multipart body, remembering the first write error.
type formWriter struct {
	buf bytes.Buffer
	mw  *multipart.Writer
	err error
}

func newFormWriter() *formWriter {
	f := &formWriter{}
	f.mw = multipart.NewWriter(&f.buf)
	return f
}

func (f *formWriter) field(name, value string) {
	if f.err != nil {
		return
	}
	f.err = f.mw.WriteField(name, value)
}

func (f *formWriter) optional(name string, value *string) {
	if value != nil {
		f.field(name, *value)
	}
}

func (f *formWriter) float(name string, v float64) {
	f.field(name, strconv.FormatFloat(v, 'f', -1, 64))
}

func (f *formWriter) file(name string, file *File) {
	if f.err != nil || file == nil {
		return
	}
	w, err := f.mw.CreateFormFile(name, file.Name)
	if err != nil {
		f.err = err
		return
	}
	_, f.err = w.Write(file.Content)
}

func (f *formWriter) finish() ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.mw.Close(); err != nil {
		return nil, "", err
	}
	return f.buf.Bytes(), f.mw.FormDataContentType(), nil
}

// checkFileSize rejects files above limit with a form validation error.
func checkFileSize(field string, file *File, limit int64) error {
	if file == nil || int64(len(file.Content)) <= limit {
		return nil
	}
	return &validation.RequestValidationError{Fields: []validation.FieldError{{
		Field:   field,
		Tag:     "max_size",
		Param:   strconv.FormatInt(limit, 10),
		Message: fmt.Sprintf("Image size must be less than %dMB", limit>>20),
	}}}
}
