package domain

import "errors"

// Authentication and identity.
var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateEmail      = errors.New("user with this email already exists")
	ErrRoleChangeForbidden = errors.New("only admin can change roles")
)

// Authorization at the resource level.
var (
	ErrAccessDenied     = errors.New("access denied")
	ErrNotCommentAuthor = errors.New("you can only edit your own comments")
)

// Resources.
var (
	ErrProblemNotFound = errors.New("problem not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrTagExists       = errors.New("tag with this name already exists")
	ErrCommentNotFound = errors.New("comment not found")
	ErrFileNotFound    = errors.New("file not found")
	ErrBlobNotFound    = errors.New("file not found on server")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file too large")
)

// ValidationError carries a message that is safe to show to the client.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }
