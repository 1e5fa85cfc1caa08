package errors

import (
	"strings"
	"unicode"
)

// ValidatePayload validates a string destined for the code-image encoder.
// The encoder cannot represent empty payloads, and control characters have
// no defined visual meaning on a printed sheet.
func ValidatePayload(payload string) error {
	if payload == "" {
		return New(ErrCodeEncoding, "code payload cannot be empty")
	}

	const maxPayloadLength = 512
	if len(payload) > maxPayloadLength {
		return New(ErrCodeEncoding, "code payload too long (max %d bytes)", maxPayloadLength)
	}

	for _, r := range payload {
		if unicode.IsControl(r) {
			return New(ErrCodeEncoding, "code payload contains control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates an output file path for document generation.
// The path must be non-empty and free of null bytes; everything else is left
// to the filesystem, surfaced as IO_ERROR at write time.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "output path contains null byte")
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "output path is a directory: %q", path)
	}

	return nil
}

// ValidateName validates a display name (client or product).
// Names are printed verbatim on the sheet, so control characters are rejected;
// length is bounded to keep text from running off the page edge entirely.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSheet, "name cannot be empty")
	}

	const maxNameLength = 128
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidSheet, "name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSheet, "name contains control characters")
		}
	}

	return nil
}
