package utils

import (
	"errors"
	"fmt"

	"salonbook/config"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Cloudinary builds a client from CLOUDINARY_URL
// (cloudinary://<api_key>:<api_secret>@<cloud_name>).
func Cloudinary() (*cloudinary.Cloudinary, error) {
	if config.AppConfig.CloudinaryURL == "" {
		return nil, errors.New("cloudinary: CLOUDINARY_URL not set")
	}
	cld, err := cloudinary.NewFromURL(config.AppConfig.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("utils.Cloudinary: failed to initialize Cloudinary: %w", err)
	}
	return cld, nil
}
