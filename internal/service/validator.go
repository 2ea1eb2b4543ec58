package service

import (
	"fmt"

	"github.com/LazizjanAsatov/Catra/internal/domain"
	"github.com/LazizjanAsatov/Catra/pkg/utils"
)

const (
	MsgMissingFile       = `Missing image in form-data "file".`
	MsgInvalidUploadType = "Only image uploads are supported."
)

// ValidateUpload accepts an image whose MIME type starts with image/ and
// whose size does not exceed maxSize bytes.
func ValidateUpload(img *domain.UploadedImage, maxSize int64) error {
	if img == nil {
		return domain.NewError(domain.KindMissingFile, MsgMissingFile, nil)
	}
	if !utils.IsImage(img.ContentType) {
		return domain.NewError(domain.KindInvalidUploadType, MsgInvalidUploadType, nil)
	}
	if img.Size > maxSize {
		return domain.NewError(domain.KindPayloadTooLarge, TooLargeMessage(maxSize), nil)
	}
	return nil
}

// TooLargeMessage formats the size rejection for a limit in bytes.
func TooLargeMessage(maxSize int64) string {
	if maxSize%(1024*1024) == 0 {
		return fmt.Sprintf("File too large. Maximum size is %d MiB.", maxSize/(1024*1024))
	}
	return fmt.Sprintf("File too large. Maximum size is %d bytes.", maxSize)
}
