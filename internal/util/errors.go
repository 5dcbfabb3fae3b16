package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQrCodeNotFound     = errors.New("qr code not found")
	ErrQrCodeInactive     = errors.New("qr code is inactive")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrStaticQrImmutable  = errors.New("static qr codes cannot be reassigned")
	ErrInvalidQrType      = errors.New("qr code type must be static or dynamic")
	ErrParticipantMissing = errors.New("participant reference required")
)
