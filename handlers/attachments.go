package handlers

import (
	"study-tracker/app"

	"github.com/gofiber/fiber/v2"
)

// UploadAttachment stores the multipart "file" field and returns its URL
func UploadAttachment(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to read upload", err)
		}
		defer f.Close()

		url, err := a.Repo.UploadFile(c.UserContext(), fh.Filename, f, fh.Header.Get("Content-Type"))
		if err != nil {
			return writeError(c, "Failed to upload file", err)
		}
		return created(c, fiber.Map{"success": true, "url": url})
	}
}

// UploadTempAttachment stores the multipart "file" field under the temp area
func UploadTempAttachment(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to read upload", err)
		}
		defer f.Close()

		upload, err := a.Repo.UploadTempFile(c.UserContext(), fh.Filename, f, fh.Header.Get("Content-Type"))
		if err != nil {
			return writeError(c, "Failed to upload file", err)
		}
		return created(c, fiber.Map{"success": true, "url": upload.URL, "path": upload.Path})
	}
}

func DeleteTempAttachment(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Query("path")
		if path == "" {
			return badRequest(c, "path is required")
		}

		if err := a.Repo.DeleteTempFile(c.UserContext(), path); err != nil {
			return writeError(c, "Failed to delete file", err)
		}
		return success(c, fiber.Map{"success": true})
	}
}
