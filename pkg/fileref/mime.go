package fileref

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// mimeTypes maps extensions to MIME types for the formats the package
// cares about. The table is consulted before the platform mime database
// so lookups stay deterministic across systems.
var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
	".heic": "image/heic",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".json": "application/json",
	".xml":  "application/xml",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// NormalizeMIME lowercases a MIME string and strips any parameters
// ("text/plain; charset=utf-8" becomes "text/plain").
func NormalizeMIME(raw string) string {
	mimeType := strings.ToLower(strings.TrimSpace(raw))
	if mimeType == "" {
		return ""
	}
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	return mimeType
}

// MIMEByName looks up the MIME type for a file name by its extension.
// Returns "" when the name has no extension or the extension is unknown.
func MIMEByName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if mimeType, ok := mimeTypes[ext]; ok {
		return mimeType
	}
	return NormalizeMIME(mime.TypeByExtension(ext))
}

// SniffMIME detects the MIME type from content, reading at most the
// first 512 bytes.
func SniffMIME(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if len(data) > 512 {
		data = data[:512]
	}
	return NormalizeMIME(http.DetectContentType(data))
}
