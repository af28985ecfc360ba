package constants

import "strings"

// SourceFormat groups uploaded file extensions by the extractor that
// handles them.
type SourceFormat string

const (
	Spreadsheet SourceFormat = "SPREADSHEET" // binary workbook formats
	Delimited   SourceFormat = "DELIMITED"   // character-separated text
	JSON        SourceFormat = "JSON"
	XML         SourceFormat = "XML"
	Document    SourceFormat = "DOCUMENT" // text-bearing documents (PDF)
	Image       SourceFormat = "IMAGE"    // scanned images, OCR required
)

// AllowedExtensions holds the file extensions accepted by the upload surface.
var AllowedExtensions = map[string]struct{}{
	"xlsx": {},
	"xls":  {},
	"csv":  {},
	"json": {},
	"xml":  {},
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to its source format.
// Returns "" for unsupported extensions.
func MapExtToFormat(ext string) SourceFormat {
	switch NormalizeExt(ext) {
	case "xlsx", "xls":
		return Spreadsheet
	case "csv":
		return Delimited
	case "json":
		return JSON
	case "xml":
		return XML
	case "pdf":
		return Document
	case "jpg", "jpeg":
		return Image
	default:
		return ""
	}
}
