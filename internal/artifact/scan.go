package artifact

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
)

// maxScanFileSize keeps the scanner away from bundles and lockfiles.
const maxScanFileSize = 2 << 20

// ScanSource walks the given directories and records every
// environment-variable reference matched by the registered recognizers
// plus any extra (config-defined) ones. Unreadable files are skipped;
// the walk itself only fails if a root directory is inaccessible.
func ScanSource(roots []string, extra []Recognizer) ([]model.EnvUsage, error) {
	recognizers := append(Recognizers(), extra...)

	var usages []model.EnvUsage
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			return nil, err
		}
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil // skip inaccessible paths
			}
			if info.IsDir() {
				name := info.Name()
				if strings.HasPrefix(name, ".") && name != "." || name == "node_modules" || name == "vendor" || name == "dist" || name == "build" || name == "__pycache__" {
					return filepath.SkipDir
				}
				return nil
			}
			if info.Size() > maxScanFileSize {
				return nil
			}

			ext := filepath.Ext(path)
			var active []Recognizer
			for _, r := range recognizers {
				if r.Matches(ext) {
					active = append(active, r)
				}
			}
			if len(active) == 0 {
				return nil
			}

			found, err := scanFile(path, active)
			if err != nil {
				return nil // unreadable file, skip
			}
			usages = append(usages, found...)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return usages, nil
}

func scanFile(path string, recognizers []Recognizer) ([]model.EnvUsage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var usages []model.EnvUsage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		for _, r := range recognizers {
			for _, m := range r.Pattern.FindAllStringSubmatch(line, -1) {
				name := firstGroup(m)
				if name == "" || r.Ignores(name) {
					continue
				}
				usages = append(usages, model.EnvUsage{
					Name:       name,
					File:       path,
					Line:       lineNo,
					Recognizer: r.Name,
				})
			}
		}
	}
	return usages, scanner.Err()
}

func firstGroup(match []string) string {
	for _, g := range match[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
