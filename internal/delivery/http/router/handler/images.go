package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
)

const (
	formFieldImages         = "images"
	formFieldExistingImages = "existingImages"
	formFieldAvatar         = "avatar"
	sniffLength             = 512
)

// imageInputs collects the images of a request. JSON bodies carry hosted images
// only; multipart bodies add uploaded files under "images" and hosted images as a
// JSON array in "existingImages". The boolean reports whether the request
// mentioned images at all, which tells updates to replace the stored list.
// Hosted images are checked against the record in the usecase layer.
func imageInputs(c echo.Context, hosted []entity.Image) ([]entity.ImageInput, bool, error) {
	present := hosted != nil
	inputs := make([]entity.ImageInput, 0, len(hosted))
	for _, img := range hosted {
		inputs = append(inputs, entity.HostedImage(img))
	}

	if !isMultipart(c) {
		return inputs, present, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, false, domainerrors.ErrValidationFailed.WithDetails("malformed multipart form").WrapMessage("parse multipart form")
	}

	if values, ok := form.Value[formFieldExistingImages]; ok {
		present = true
		for _, raw := range values {
			existing, err := parseHostedImages(raw)
			if err != nil {
				return nil, false, err
			}
			for _, img := range existing {
				inputs = append(inputs, entity.HostedImage(img))
			}
		}
	}

	files := form.File[formFieldImages]
	if len(files) > 0 {
		present = true
	}
	for _, fh := range files {
		upload, err := readUpload(fh)
		if err != nil {
			return nil, false, err
		}
		inputs = append(inputs, entity.PendingUpload(upload))
	}

	return inputs, present, nil
}

// singleUpload returns the file posted under field, or nil when none was sent.
func singleUpload(c echo.Context, field string) (*entity.ImageUpload, error) {
	if !isMultipart(c) {
		return nil, nil
	}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}

		return nil, domainerrors.ErrValidationFailed.WithDetails("malformed multipart form").WrapMessage("parse multipart form")
	}

	upload, err := readUpload(fh)
	if err != nil {
		return nil, err
	}

	return &upload, nil
}

func readUpload(fh *multipart.FileHeader) (entity.ImageUpload, error) {
	file, err := fh.Open()
	if err != nil {
		return entity.ImageUpload{}, domainerrors.ErrValidationFailed.WithDetails("unreadable file " + fh.Filename).WrapMessage("open upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return entity.ImageUpload{}, domainerrors.ErrValidationFailed.WithDetails("unreadable file " + fh.Filename).WrapMessage("read upload")
	}

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = http.DetectContentType(data[:min(len(data), sniffLength)])
	}

	return entity.ImageUpload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func parseHostedImages(raw string) ([]entity.Image, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var images []entity.Image
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(formFieldExistingImages + " must be a JSON array of images").WrapMessage("parse hosted images")
	}
	for _, img := range images {
		if img.PublicID == "" || img.URL == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("hosted images need publicId and url").WrapMessage("parse hosted images")
		}
	}

	return images, nil
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}
