package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrInvalidSubmission  = errors.New("missing quiz_id or selected_answers")
	ErrInvalidQuizContent = errors.New("each question must have exactly one correct answer")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in course")
	ErrConversationAccess = errors.New("conversation does not belong to user")
)
