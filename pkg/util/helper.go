package util

import (
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleCaser   = cases.Title(language.English)
	separatorMap = strings.NewReplacer("_", " ", "-", " ", ".", " ")
)

// DisplayName turns an identifier like "red_deer" into "Red Deer".
func DisplayName(raw string) string {
	s := separatorMap.Replace(raw)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return titleCaser.String(s)
}

func IsFile(path string) (bool, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return !fileInfo.IsDir(), nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	fileInfo, err := os.Stat(path)
	return err == nil && fileInfo.IsDir()
}
