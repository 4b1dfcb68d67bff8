package repositories

import "errors"

var (
	ErrInvalidID       = errors.New("invalid id format")
	ErrUserNotFound    = errors.New("user not found")
	ErrPoemNotFound    = errors.New("poem not found")
	ErrCommentNotFound = errors.New("comment not found")
)
