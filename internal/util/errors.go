package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrModuleNotFound       = errors.New("learning module not found")
	ErrModuleNotPublished   = errors.New("learning module not published")
	ErrAlreadyEnrolled      = errors.New("already enrolled in this course")
	ErrEnrollmentNotFound   = errors.New("enrollment not found")
	ErrSessionNotFound      = errors.New("viewer session not found")
	ErrNoActiveQuiz         = errors.New("no quiz in progress for this section")
	ErrQuizAlreadyActive    = errors.New("a quiz is already in progress")
	ErrSectionHasNoQuiz     = errors.New("section has no quiz")
	ErrNotesDisabled        = errors.New("notes are disabled for this module")
	ErrBookmarksDisabled    = errors.New("bookmarks are disabled for this module")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
)
