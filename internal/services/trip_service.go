package services

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"reservas/internal/domain"
	"reservas/internal/domain/models"
	"reservas/internal/repositories"
	"reservas/internal/utils"
)

// TripService handles admin catalog management, including the attached image
// asset. A disallowed upload is ignored, not fatal: the trip still saves, the
// rejection only shows up in the logs.
type TripService struct {
	TripRepo  repositories.TripRepository
	UploadDir string
	RequestID string
}

type TripInput struct {
	Name        string
	Description string
	Date        string
	Price       string
}

// ImageUpload decouples the service from multipart internals; the handler
// fills it from the request form.
type ImageUpload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

func (s TripService) Create(in TripInput, img *ImageUpload) (models.Trip, error) {
	t, err := s.buildTrip(in)
	if err != nil {
		return t, err
	}
	t.Image = s.storeImage(img)

	id, err := s.TripRepo.Create(t)
	if err != nil {
		return t, err
	}
	t.ID = id
	utils.LogEvent(s.RequestID, "viaje", "crear", "id="+strconv.FormatInt(id, 10))
	return t, nil
}

func (s TripService) Update(id int64, in TripInput, img *ImageUpload) (models.Trip, error) {
	existing, err := s.TripRepo.GetByID(id)
	if err != nil {
		return existing, err
	}

	t, err := s.buildTrip(in)
	if err != nil {
		return t, err
	}
	t.ID = id
	t.Image = existing.Image
	if stored := s.storeImage(img); stored != "" {
		t.Image = stored
	}

	if err := s.TripRepo.Update(t); err != nil {
		return t, err
	}
	utils.LogEvent(s.RequestID, "viaje", "actualizar", "id="+strconv.FormatInt(id, 10))
	return t, nil
}

func (s TripService) Delete(id int64) error {
	if err := s.TripRepo.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "viaje", "eliminar", "id="+strconv.FormatInt(id, 10))
	return nil
}

func (s TripService) buildTrip(in TripInput) (models.Trip, error) {
	t := models.Trip{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Date:        strings.TrimSpace(in.Date),
	}

	if t.Name == "" {
		return t, domain.ValidationError{Field: "name", Msg: "el nombre es obligatorio"}
	}
	if t.Description == "" {
		return t, domain.ValidationError{Field: "description", Msg: "la descripción es obligatoria"}
	}
	if t.Date != "" && !utils.ValidDate(t.Date) {
		return t, domain.ValidationError{Field: "date", Msg: "la fecha debe tener formato AAAA-MM-DD"}
	}

	price, err := utils.NormalizePrice(in.Price)
	if err != nil {
		return t, domain.ValidationError{Field: "price", Err: err, Msg: "el precio no es válido"}
	}
	if price != "" {
		t.Price = &price
	}
	return t, nil
}

// storeImage writes an allowed upload under UploadDir and returns the stored
// filename, or "" when there is nothing (valid) to store.
func (s TripService) storeImage(img *ImageUpload) string {
	if img == nil || strings.TrimSpace(img.Filename) == "" {
		return ""
	}
	if !utils.AllowedImageFile(img.Filename) {
		utils.LogEvent(s.RequestID, "viaje", "imagen_ignorada", "extensión no permitida: "+img.Filename)
		return ""
	}

	name := utils.SanitizeFilename(img.Filename)

	src, err := img.Open()
	if err != nil {
		utils.LogEvent(s.RequestID, "viaje", "imagen_error", err.Error())
		return ""
	}
	defer src.Close()

	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		utils.LogEvent(s.RequestID, "viaje", "imagen_error", err.Error())
		return ""
	}

	dst, err := os.Create(filepath.Join(s.UploadDir, name))
	if err != nil {
		utils.LogEvent(s.RequestID, "viaje", "imagen_error", err.Error())
		return ""
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		utils.LogEvent(s.RequestID, "viaje", "imagen_error", err.Error())
		return ""
	}
	return name
}
