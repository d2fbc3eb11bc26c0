package template

import "errors"

var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyReviewed    = errors.New("submission already reviewed")
	ErrNameTaken          = errors.New("template name already exists")
	ErrCodeTaken          = errors.New("template code already exists")
	ErrReasonRequired     = errors.New("rejection reason is required")
)
