package storage

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"catalogapi/apperrors"
	"catalogapi/config"
)

// Validator enforces the upload policy before anything reaches the store:
// extension and sniffed MIME type must both be on the allow-list, each file
// must fit the size cap, and a request may not exceed the file-count cap.
type Validator struct {
	policy config.UploadPolicy
}

func NewValidator(policy config.UploadPolicy) *Validator {
	return &Validator{policy: policy}
}

// ValidateFile checks one upload and returns the detected content type. The
// MIME type comes from sniffing the first 512 bytes, not from the client
// header.
func (v *Validator) ValidateFile(fh *multipart.FileHeader) (string, error) {
	if fh.Size > v.policy.MaxFileBytes {
		return "", apperrors.Validation("file %s too large (max %d MB)", fh.Filename, v.policy.MaxFileBytes>>20)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !v.policy.AllowedExtensions[ext] {
		return "", apperrors.Validation("file %s has a disallowed extension", fh.Filename)
	}

	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && n == 0 {
		return "", apperrors.Validation("file %s is unreadable", fh.Filename)
	}

	detected := strings.ToLower(http.DetectContentType(buffer[:n]))
	if i := strings.Index(detected, ";"); i >= 0 {
		detected = detected[:i]
	}
	if !v.policy.AllowedMIMETypes[detected] {
		return "", apperrors.Validation("file %s has a disallowed type %s", fh.Filename, detected)
	}

	return detected, nil
}

// ValidateBatch checks the count cap and every file, returning the detected
// content types in file order. Any violation rejects the whole batch.
func (v *Validator) ValidateBatch(files []*multipart.FileHeader) ([]string, error) {
	if len(files) > v.policy.MaxFiles {
		return nil, apperrors.Validation("too many files (max %d)", v.policy.MaxFiles)
	}
	types := make([]string, 0, len(files))
	for _, fh := range files {
		ct, err := v.ValidateFile(fh)
		if err != nil {
			return nil, err
		}
		types = append(types, ct)
	}
	return types, nil
}
