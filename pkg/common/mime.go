package common

import (
	"mime"
	"strings"
)

// fallbackMIMETypes maps file extensions to MIME types for extensions the
// platform mime database may not know. Keys are lower-case, without dot.
var fallbackMIMETypes = map[string]string{
	"pdf":  "application/pdf",
	"txt":  "text/plain",
	"md":   "text/markdown",
	"csv":  "text/csv",
	"html": "text/html",
	"json": "application/json",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"mp3":  "audio/mpeg",
	"mp4":  "video/mp4",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
}

// ContentTypeFor resolves the MIME type for a file name when the caller did
// not declare one. The extension is the last dot-delimited segment of the
// name. Unknown extensions resolve to application/octet-stream.
func ContentTypeFor(fileName string) string {
	idx := strings.LastIndexByte(fileName, '.')
	if idx < 0 || idx == len(fileName)-1 {
		return "application/octet-stream"
	}

	ext := strings.ToLower(fileName[idx+1:])
	if typ, ok := fallbackMIMETypes[ext]; ok {
		return typ
	}

	if typ := mime.TypeByExtension("." + ext); typ != "" {
		// Strip any charset parameter, the upload API wants the bare type.
		if base, _, err := mime.ParseMediaType(typ); err == nil {
			return base
		}
		return typ
	}

	return "application/octet-stream"
}
