package service

import "github.com/microcosm-cc/bluemonday"

var (
	// user supplied rich text keeps safe formatting
	richText = bluemonday.UGCPolicy()
	// names and short comments are stored as plain text
	plainText = bluemonday.StrictPolicy()
)
