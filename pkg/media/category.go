package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Category is the name of the subdirectory a media file is stored under.
type Category string

const (
	Videos    Category = "videos"
	Images    Category = "images"
	Documents Category = "documents"
	Audio     Category = "audio"
	Archives  Category = "archives"
	Programs  Category = "programs"
	Data      Category = "data"
	Web       Category = "web"
	Other     Category = "other"
)

// Categories lists every category in display order. Other is always last.
var Categories = []Category{Videos, Images, Documents, Audio, Archives, Programs, Data, Web, Other}

// NumCategories is the length of Categories.
const NumCategories = 9

// Index returns the position of c in Categories, or -1.
func (c Category) Index() int {
	for i, known := range Categories {
		if known == c {
			return i
		}
	}
	return -1
}

var extensions = map[string]Category{
	"mp4": Videos, "avi": Videos, "mkv": Videos, "mov": Videos, "wmv": Videos,
	"flv": Videos, "webm": Videos, "3gp": Videos, "m4v": Videos,

	"jpg": Images, "jpeg": Images, "png": Images, "gif": Images,
	"bmp": Images, "webp": Images, "svg": Images, "tiff": Images,

	"pdf": Documents, "doc": Documents, "docx": Documents, "xls": Documents, "xlsx": Documents,
	"ppt": Documents, "pptx": Documents, "txt": Documents, "rtf": Documents, "odt": Documents,

	"mp3": Audio, "wav": Audio, "ogg": Audio, "flac": Audio,
	"m4a": Audio, "aac": Audio, "wma": Audio,

	"zip": Archives, "rar": Archives, "7z": Archives, "tar": Archives, "gz": Archives, "bz2": Archives,

	"exe": Programs, "apk": Programs, "iso": Programs,

	"json": Data, "xml": Data, "csv": Data, "sql": Data,

	"html": Web, "css": Web, "js": Web,
}

// Classify maps a file name to its category using the last extension.
// Names without a known extension fall into Other.
func Classify(filename string) Category {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if c, ok := extensions[ext]; ok {
		return c
	}
	return Other
}

// Filter selects which categories get downloaded.
type Filter string

// All disables category filtering.
const All Filter = "all"

// FilterChoices are the values accepted on the command line.
var FilterChoices = []Filter{All, Filter(Videos), Filter(Images), Filter(Documents), Filter(Audio), Filter(Archives)}

// ParseFilter validates a filter value.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return All, nil
	}
	f := Filter(strings.ToLower(s))
	for _, choice := range FilterChoices {
		if f == choice {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid media type %q (choose from all, videos, images, documents, audio, archives)", s)
}

// Allows reports whether files of category c pass the filter.
func (f Filter) Allows(c Category) bool {
	return f == All || f == "" || Category(f) == c
}
