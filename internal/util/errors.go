package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrSessionNotFound    = errors.New("view session not found or expired")
	ErrSessionForbidden   = errors.New("view session belongs to another user")
	ErrInvalidFileType    = errors.New("invalid file type")
)
