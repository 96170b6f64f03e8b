package security

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrExtensionNotAllowed = errors.New("Only PDF, DOC, and DOCX files are allowed")

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Detected MIME type
	Error        string // Error message if validation failed
}

// Magic byte signatures for allowed file types
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
}

// MIME types accepted per extension. Detection walks the MIME hierarchy, so
// a DOCX that is only recognised as a ZIP still passes.
var allowedMIMETypes = map[string]map[string]bool{
	".pdf": {"application/pdf": true},
	".doc": {
		"application/msword":       true,
		"application/x-ole-storage": true,
	},
	".docx": {
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		"application/zip": true,
	},
}

// Content types stored with accepted files, by extension.
var canonicalMIME = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ContentType is the type to store with a valid file. Generic container
// detections (zip, ole) are replaced by the extension's document type.
func (r FileValidationResult) ContentType() string {
	if !r.Valid {
		return ""
	}
	if canonical, ok := canonicalMIME[r.Extension]; ok && !strings.HasPrefix(r.DetectedMIME, canonical) {
		return canonical
	}
	return r.DetectedMIME
}

// ValidateResume performs 3-layer file validation:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
// 3. MIME detection against the extension's whitelist
func ValidateResume(filename string, data []byte) FileValidationResult {
	var result FileValidationResult

	ext := strings.ToLower(filepath.Ext(filename))
	result.Extension = ext
	if err := ValidateFileExtension(filename); err != nil {
		result.Error = err.Error()
		return result
	}

	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	detected := mimetype.Detect(data)
	result.DetectedMIME = detected.String()

	allowed := allowedMIMETypes[ext]
	for m := detected; m != nil; m = m.Parent() {
		if allowed[m.String()] {
			result.Valid = true
			return result
		}
	}

	result.Error = "MIME type not allowed: " + detected.String()
	return result
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, sig := range magicBytes[ext] {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// ValidateFileExtension checks only the extension (for quick pre-validation)
func ValidateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := magicBytes[ext]; !ok {
		return ErrExtensionNotAllowed
	}
	return nil
}
