package app_errors

import "errors"

var ErrNotFound = errors.New("element not found")
var ErrSectionNotFound = errors.New("section not found")
var ErrContentNotFound = errors.New("content item not found")
var ErrCourseNotFound = errors.New("course not found")
var ErrOutOfRange = errors.New("position out of range")
var ErrInvalidMove = errors.New("invalid move coordinates")
var ErrToggleInProgress = errors.New("toggle already in progress for this item")
var ErrPublishLocked = errors.New("publish state cannot be changed for this content type")
var ErrUnknownAttribute = errors.New("unknown toggle attribute")
var ErrConfirmationNotFound = errors.New("confirmation token not found")
var ErrConfirmationCancelled = errors.New("confirmation was cancelled")
var ErrDuplicateContent = errors.New("content item with this id already exists in the course")
