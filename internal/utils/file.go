package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultExtension is used for inputs whose file name has no usable extension
const DefaultExtension = "png"

// GetFileExtension returns the file extension without the dot, lower-cased
func GetFileExtension(filename string) string {
	ext := filepath.Ext(filename)
	if len(ext) > 0 {
		return strings.ToLower(ext[1:])
	}
	return ""
}

// OutputPath builds <dir>/<stem>_<name>.<ext> next to input. The extension is
// whatever follows the last dot of the file name; a name without a dot, or
// with an empty stem or extension, keeps the whole file name as stem and
// gets DefaultExtension.
func OutputPath(input, name string) (string, error) {
	base := filepath.Base(input)
	if input == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("input path %q has no file name", input)
	}

	stem, ext := base, DefaultExtension
	if i := strings.LastIndex(base, "."); i > 0 && i < len(base)-1 {
		stem, ext = base[:i], base[i+1:]
	}

	return filepath.Join(filepath.Dir(filepath.Clean(input)), fmt.Sprintf("%s_%s.%s", stem, name, ext)), nil
}
