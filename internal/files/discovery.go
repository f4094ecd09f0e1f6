// Package files locates schedule workbooks on disk for the CLI, which
// accepts a directory of daily drops as well as a single file.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// WorkbookInfo describes a discovered schedule workbook.
type WorkbookInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides workbook discovery operations rooted at a base path.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindWorkbooks lists the Excel workbooks in dir, newest first. Editor lock
// files ("~$...") are skipped.
func (d *Discovery) FindWorkbooks(dir string) ([]WorkbookInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var books []WorkbookInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls") {
			continue
		}
		if strings.HasPrefix(name, "~$") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		books = append(books, WorkbookInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(books, func(i, j int) bool {
		return books[i].ModTime.After(books[j].ModTime)
	})

	return books, nil
}

// LatestWorkbook returns the most recently modified workbook in dir.
func (d *Discovery) LatestWorkbook(dir string) (WorkbookInfo, error) {
	books, err := d.FindWorkbooks(dir)
	if err != nil {
		return WorkbookInfo{}, err
	}
	if len(books) == 0 {
		return WorkbookInfo{}, fmt.Errorf("no workbooks found in %s", dir)
	}
	return books[0], nil
}
