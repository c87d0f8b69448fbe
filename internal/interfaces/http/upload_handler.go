package http

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
)

// Extensiones de imagen aceptadas para portadas.
var allowedImageExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

const maxImageSize = 5 << 20 // 5 MiB

// UploadHandler guarda portadas de libros en disco local y devuelve su URL pública.
type UploadHandler struct {
	dir       string
	publicURL string
}

// NewUploadHandler construye el handler de subida de imágenes.
func NewUploadHandler(dir, publicURL string) *UploadHandler {
	return &UploadHandler{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}
}

// UploadImage godoc
// @Summary      Subir imagen de portada
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        imagen  formData  file  true  "archivo de imagen (jpg, png, webp, máx 5 MiB)"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/upload/imagen [post]
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("imagen")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "se requiere el campo imagen"})
	}
	if file.Size > maxImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "la imagen supera el tamaño máximo de 5 MiB"})
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE_TYPE", Message: "solo se aceptan imágenes jpg, png o webp"})
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo preparar el directorio de subida"})
	}
	name := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(h.dir, name)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo guardar la imagen"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": fmt.Sprintf("%s/%s", h.publicURL, name),
	})
}
