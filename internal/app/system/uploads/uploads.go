package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxImageBytes caps a single uploaded image.
const maxImageBytes = 10 << 20

// Uploader stores request images on local disk and records the public
// URL on the owning document. It is the image-upload collaborator:
// callers hand it the target collection, field name, and document id.
type Uploader struct {
	Dir       string // filesystem directory for stored files
	URLPrefix string // public URL prefix files are served under
	Log       *zap.Logger
}

// New creates an Uploader rooted at dir, serving under urlPrefix.
func New(dir, urlPrefix string, logger *zap.Logger) *Uploader {
	return &Uploader{Dir: dir, URLPrefix: urlPrefix, Log: logger}
}

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// SaveImage reads the named multipart file field from the request,
// stores it under a uuid filename, and pushes the resulting URL onto
// the image field of the identified document. It returns the stored
// URL, or ("", nil) when the request carries no file for the field.
// The image is optional: a non-multipart request (plain JSON body) is
// treated the same as a multipart request without the field.
func (u *Uploader) SaveImage(ctx context.Context, r *http.Request, field string, col *mongo.Collection, imageField string, docID primitive.ObjectID) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", fmt.Errorf("reading upload: %w", err)
	}
	defer file.Close()

	if header.Size > maxImageBytes {
		return "", fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExt[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	name := uuid.NewString() + ext
	if err := u.writeFile(file, name); err != nil {
		return "", err
	}

	url := strings.TrimSuffix(u.URLPrefix, "/") + "/" + name
	_, err = col.UpdateOne(ctx,
		bson.M{"_id": docID},
		bson.M{"$push": bson.M{imageField: url}},
	)
	if err != nil {
		// The file is already on disk; remove it so failed uploads
		// don't accumulate orphans.
		if rmErr := os.Remove(filepath.Join(u.Dir, name)); rmErr != nil {
			u.Log.Warn("orphan upload cleanup failed", zap.String("file", name), zap.Error(rmErr))
		}
		return "", err
	}

	u.Log.Info("image stored",
		zap.String("collection", col.Name()),
		zap.String("doc_id", docID.Hex()),
		zap.String("url", url),
	)
	return url, nil
}

func (u *Uploader) writeFile(src multipart.File, name string) error {
	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return fmt.Errorf("creating upload dir: %w", err)
	}
	dst, err := os.Create(filepath.Join(u.Dir, name))
	if err != nil {
		return fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, maxImageBytes)); err != nil {
		return fmt.Errorf("writing upload file: %w", err)
	}
	return nil
}
