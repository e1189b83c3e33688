package handlers

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "immolist/internal/log"
)

// UploadHandler stores gallery images under MediaDir and hands back the
// /media URL to attach to a property.
type UploadHandler struct {
	MediaDir string
}

var imageExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no file provided"})
	}
	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		applog.Security(c, "upload.mime.reject", map[string]any{"content_type": ct})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file must be an image"})
	}
	ext, ok := imageExts[ct]
	if !ok {
		ext = ".img"
	}
	name := uuid.NewString() + ext

	if err := os.MkdirAll(h.MediaDir, 0o755); err != nil {
		applog.Error(c, "upload.mkdir", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not store file"})
	}
	if err := c.SaveFile(fh, filepath.Join(h.MediaDir, name)); err != nil {
		applog.Error(c, "upload.write", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not store file"})
	}
	applog.Audit(c, "upload.store", map[string]any{"filename": name, "size": fh.Size})
	return c.JSON(fiber.Map{"url": "/media/" + name, "filename": name})
}
