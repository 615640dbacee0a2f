// Package receipts stores uploaded receipt images and hands back the URL
// saved on the expense.
package receipts

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"jobsite-tracker/internal/errors"
	"jobsite-tracker/internal/validation"
)

// Store saves receipt files.
type Store interface {
	// Put validates and saves data for the owner and returns its public URL.
	Put(ctx context.Context, ownerID int64, filename string, data []byte) (string, error)
	// Delete removes the file behind a URL returned by Put. Unknown URLs are ignored.
	Delete(ctx context.Context, url string) error
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// LocalStore keeps receipts on disk as <dir>/<owner>/<uuid><ext>.
type LocalStore struct {
	dir       string
	baseURL   string
	validator *validation.ExpenseValidator
	logger    logrus.FieldLogger
	newID     func() uuid.UUID
}

// NewLocalStore creates a store rooted at dir whose files are served under baseURL.
func NewLocalStore(dir, baseURL string, v *validation.Validator, logger logrus.FieldLogger) *LocalStore {
	return &LocalStore{
		dir:       dir,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		validator: validation.NewExpenseValidator(v),
		logger:    logger,
		newID:     uuid.New,
	}
}

// Dir returns the directory receipts are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put checks the size limit and sniffed image type, then writes the file.
func (s *LocalStore) Put(ctx context.Context, ownerID int64, filename string, data []byte) (string, error) {
	contentType, err := s.validator.ValidateReceipt(data)
	if err != nil {
		if ve, ok := err.(*validation.ValidationError); ok {
			return "", errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
		}
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", errors.NewStorageError("save receipt", err)
	}

	owner := strconv.FormatInt(ownerID, 10)
	name := s.newID().String() + extension(contentType, filename)

	ownerDir := filepath.Join(s.dir, owner)
	if err := os.MkdirAll(ownerDir, 0755); err != nil {
		return "", errors.NewStorageError("save receipt", err)
	}
	if err := os.WriteFile(filepath.Join(ownerDir, name), data, 0644); err != nil {
		return "", errors.NewStorageError("save receipt", err)
	}

	url := s.baseURL + "/" + path.Join(owner, name)
	s.logger.WithFields(logrus.Fields{
		"owner_id":     ownerID,
		"content_type": contentType,
		"bytes":        len(data),
		"url":          url,
	}).Debug("receipt stored")

	return url, nil
}

// Delete removes a stored receipt.
func (s *LocalStore) Delete(ctx context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || rel == "" {
		return nil
	}

	target := filepath.Join(s.dir, filepath.FromSlash(path.Clean("/"+rel)))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return errors.NewStorageError("delete receipt", err)
	}
	return nil
}

func extension(contentType, filename string) string {
	if ext, ok := extensions[contentType]; ok {
		return ext
	}
	return strings.ToLower(filepath.Ext(filename))
}
