package entity

// Image is a picture already stored by the image host.
type Image struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// ImageUpload is raw image content received with a request and not yet hosted.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageInput is either a pending upload or an already hosted image.
// Exactly one of Upload and Hosted is set.
type ImageInput struct {
	Upload *ImageUpload
	Hosted *Image
}

// PendingUpload wraps raw content as an ImageInput.
func PendingUpload(upload ImageUpload) ImageInput {
	return ImageInput{Upload: &upload}
}

// HostedImage wraps an existing hosted image as an ImageInput.
func HostedImage(img Image) ImageInput {
	return ImageInput{Hosted: &img}
}

// IsUpload reports whether the input still has to be uploaded.
func (i ImageInput) IsUpload() bool {
	return i.Upload != nil
}

// IsZero reports whether neither variant is set.
func (i ImageInput) IsZero() bool {
	return i.Upload == nil && i.Hosted == nil
}

// PublicIDs returns the public ids of the given images.
func PublicIDs(images []Image) []string {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		if img.PublicID != "" {
			ids = append(ids, img.PublicID)
		}
	}

	return ids
}
