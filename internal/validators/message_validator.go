package validators

import (
	"strings"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/enums"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/errs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models/socket"
)

// ValidateMessagePayload normalizes the type tag and enforces the content
// rules: text needs non-empty content, file and image need a file reference.
func ValidateMessagePayload(payload *socket.SendMessagePayload) error {
	if payload.Type == "" {
		payload.Type = enums.MESSAGE_TYPE_TEXT
	}
	switch payload.Type {
	case enums.MESSAGE_TYPE_TEXT:
		if strings.TrimSpace(payload.Content) == "" {
			return errs.ErrEmptyMessage
		}
	case enums.MESSAGE_TYPE_FILE, enums.MESSAGE_TYPE_IMAGE:
		if payload.FileURL == nil || *payload.FileURL == "" {
			return errs.InvalidOperation("file messages require a file reference")
		}
	default:
		return errs.ErrInvalidMessageType
	}
	return nil
}
