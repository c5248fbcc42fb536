package controllers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

// Uploaded images are bounded to this box; anything larger is scaled
// down to keep page weight sane on mobile connections.
const (
	maxImageWidth  = 1600
	maxImageHeight = 1200
)

func uploadDir() string {
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		return v
	}
	return "./uploads"
}

// saveUploadedImage decodes, resizes, and stores an uploaded image under
// uploads/<subfolder>/, returning the relative path to persist.
func saveUploadedImage(file *multipart.FileHeader, subfolder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Dx() > maxImageWidth || img.Bounds().Dy() > maxImageHeight {
		img = imaging.Fit(img, maxImageWidth, maxImageHeight, imaging.Lanczos)
	}

	base := strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename))
	filename := fmt.Sprintf("%s_%s.jpg", time.Now().Format("20060102_150405"), base)
	relPath := filepath.Join(subfolder, filename)

	dir := filepath.Join(uploadDir(), subfolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := imaging.Save(img, filepath.Join(uploadDir(), relPath), imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return relPath, nil
}

// removeStoredImage deletes a previously saved image, logging rather than
// failing the request when the file is already gone.
func removeStoredImage(relPath string) {
	if relPath == "" {
		return
	}
	if err := os.Remove(filepath.Join(uploadDir(), relPath)); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("path", relPath).Warn("could not remove stored image")
	}
}
