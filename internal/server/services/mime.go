package services

import (
	"mime"
	"path/filepath"
	"strings"
)

// DefaultDownloadType is sent when a file has no derivable MIME type.
const DefaultDownloadType = "application/octet-stream"

// Extensions whose system mapping differs between hosts or is missing on
// minimal images.
var extraTypes = map[string]string{
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".json": "application/json",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".odt":  "application/vnd.oasis.opendocument.text",
	".rtf":  "application/rtf",
	".zip":  "application/zip",
	".tar":  "application/x-tar",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
}

func init() {
	for ext, typ := range extraTypes {
		_ = mime.AddExtensionType(ext, typ)
	}
}

// Compression suffixes name an encoding rather than a type; the type comes
// from the extension beneath them.
var (
	suffixAliases = map[string]string{
		".tgz":  ".tar.gz",
		".taz":  ".tar.gz",
		".tz":   ".tar.gz",
		".tbz2": ".tar.bz2",
		".txz":  ".tar.xz",
		".svgz": ".svg.gz",
	}
	encodingSuffixes = map[string]bool{
		".gz":  true,
		".z":   true,
		".bz2": true,
		".xz":  true,
		".br":  true,
	}
)

// MimeTypeFor derives a media type from the extension of name. Parameters
// such as charset are dropped. It returns nil when nothing is known, which
// includes a bare compressed name like "a.gz".
func MimeTypeFor(name string) *string {
	base := strings.ToLower(filepath.Base(name))
	ext := filepath.Ext(base)
	if alias, ok := suffixAliases[ext]; ok {
		base = strings.TrimSuffix(base, ext) + alias
		ext = filepath.Ext(base)
	}
	if encodingSuffixes[ext] {
		base = strings.TrimSuffix(base, ext)
		ext = filepath.Ext(base)
	}
	if ext == "" {
		return nil
	}
	typ := mime.TypeByExtension(ext)
	if typ == "" {
		return nil
	}
	if mediaType, _, err := mime.ParseMediaType(typ); err == nil {
		typ = mediaType
	}
	return &typ
}
