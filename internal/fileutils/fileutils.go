// Package fileutils provides common file operations plus the file-type
// sniffing used to route raw exports.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ybarda/heshbon/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// FileExists checks if a file exists and is not a directory.
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ReadFile reads the entire contents of a file.
func ReadFile(filePath string) ([]byte, error) {
	if !FileExists(filePath) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// WriteFile writes data to a file, creating parent directories if needed.
func WriteFile(filePath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filePath, data, perm); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// DetectFileType classifies an export by extension and content. Bank "xls"
// downloads are frequently HTML tables with a spreadsheet extension, so an
// .xls whose body opens with markup is tagged as such.
func DetectFileType(filePath string, content []byte) models.FileType {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".csv", ".txt":
		return models.FileTypeCSV
	case ".xls", ".xlsx", ".html", ".htm":
		if looksLikeMarkup(content) {
			return models.FileTypeXLSHTML
		}
		return models.FileTypeXLS
	default:
		if looksLikeMarkup(content) {
			return models.FileTypeXLSHTML
		}
		return models.FileTypeCSV
	}
}

// looksLikeMarkup checks the head of the payload for HTML markers.
func looksLikeMarkup(content []byte) bool {
	head := content
	if len(head) > 2048 {
		head = head[:2048]
	}
	lower := strings.ToLower(string(head))
	for _, marker := range []string{"<html", "<table", "<!doctype", "<tr", "<meta"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ReadImport loads a file and wraps it as a raw import for the given source.
func ReadImport(filePath string, source models.Source) (models.RawImport, error) {
	data, err := ReadFile(filePath)
	if err != nil {
		return models.RawImport{}, err
	}
	fileType := DetectFileType(filePath, data)
	log.WithFields(logrus.Fields{
		"file":      filePath,
		"source":    string(source),
		"file_type": string(fileType),
	}).Debug("Loaded import file")
	return models.RawImport{
		Source:   source,
		RawText:  string(data),
		FileType: fileType,
	}, nil
}
