package file

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Info describes an object that a Source can open.
type Info struct {
	Name        string // Base name of the object
	Path        string // Path or key as requested by the caller
	Size        int64  // Size in bytes, -1 when unknown
	ContentType string // Content type reported by the backend, if any
}

// Source opens named objects for reading.
type Source interface {
	// Open returns a reader positioned at the start of the object together
	// with its metadata. Only regular files are opened; the caller owns the
	// returned reader and must close it.
	Open(ctx context.Context, path string) (io.ReadCloser, *Info, error)
}

var extensionMIMETypes = map[string]string{
	// images
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"heic": "image/heic",
	"heif": "image/heif",
	"avif": "image/avif",
	"jxl":  "image/jxl",
	"ico":  "image/x-icon",

	// video
	"mp4":  "video/mp4",
	"mpeg": "video/mpeg",
	"mpg":  "video/mpeg",
	"webm": "video/webm",
	"mov":  "video/quicktime",
	"avi":  "video/x-msvideo",
	"flv":  "video/x-flv",
	"3gp":  "video/3gpp",
	"mkv":  "video/x-matroska",

	// audio
	"mp3":  "audio/mpeg",
	"ogg":  "audio/ogg",
	"wav":  "audio/wav",
	"aac":  "audio/aac",
	"m4a":  "audio/mp4",
	"opus": "audio/opus",
	"flac": "audio/flac",

	// documents and archives
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"zip":  "application/zip",
	"gz":   "application/gzip",
	"tar":  "application/x-tar",
	"json": "application/json",
	"xml":  "application/xml",
	"wasm": "application/wasm",

	// text
	"txt":  "text/plain",
	"csv":  "text/csv",
	"htm":  "text/html",
	"html": "text/html",
	"css":  "text/css",
	"js":   "text/javascript",
	"md":   "text/markdown",
}

// MIMETypeByExtension returns the content type registered for a file
// extension. The extension may be given with or without the leading dot and
// is matched case-insensitively. The built-in table wins over the system one
// so results do not depend on the host's mime.types files.
//
// Example:
//
//	ct, ok := file.MIMETypeByExtension("csv") // "text/csv", true
func MIMETypeByExtension(ext string) (string, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return "", false
	}
	if ct, ok := extensionMIMETypes[ext]; ok {
		return ct, true
	}
	if ct := mime.TypeByExtension("." + ext); ct != "" {
		return ct, true
	}
	return "", false
}

// SanitizeFilename removes any path components and dangerous characters from a filename
// and normalizes it to Unicode NFC.
// Returns "unnamed" for empty or special directory references.
//
// Example:
//
//	safe := file.SanitizeFilename("../../../etc/passwd") // Returns "passwd"
//	safe = file.SanitizeFilename("C:\\Windows\\file.txt") // Returns "file.txt"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")
	filename = norm.NFC.String(filename)

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}
