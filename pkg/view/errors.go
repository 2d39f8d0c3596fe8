package view

import "errors"

var (
	ErrViewNotFound   = errors.New("view.not_found")
	ErrLayoutNotFound = errors.New("view.layout_not_found")
	ErrRenderFailed   = errors.New("view.render_failed")
)
