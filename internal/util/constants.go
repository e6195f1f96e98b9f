package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeImage = "image/"

	// MaxPhotoSize caps profile photo uploads at 5 MiB.
	MaxPhotoSize = 5 << 20
)

var (
	AllowedPhotoExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}
	AllowedPhotoMimeTypes  = []string{"image/jpeg", "image/png", "image/webp"}
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)
