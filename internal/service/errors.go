package service

import (
	"errors"

	"persona-match/internal/domain"
	"persona-match/internal/personality"
)

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrInvalidType       = domain.ErrInvalidType
	ErrInvalidQuiz       = personality.ErrInvalidQuiz
	ErrSelfCompatibility = errors.New("cannot score a user against itself")
	ErrLocked            = errors.New("user update already in progress")
)
