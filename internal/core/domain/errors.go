package domain

import "errors"

var (
	ErrQuestionNotFound   = errors.New("question not found")
	ErrInvalidQuestionID  = errors.New("invalid question id")
	ErrAlreadyResponded   = errors.New("submitter has already responded")
	ErrInvalidAnswer      = errors.New("invalid answer for this question type")
	ErrUnauthorizedDomain = errors.New("email is not part of the allowed domain")
	ErrUnknownSubmitter   = errors.New("student not found in roster")
	ErrMissingIdentity    = errors.New("an identity is required for this question")
	ErrInternal           = errors.New("internal server error")
)
