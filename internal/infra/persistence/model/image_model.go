package model

// ImageData is the JSON shape of a hosted image stored inside a row.
type ImageData struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}
