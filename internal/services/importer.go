package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"

	"mirror-notes/internal/logger"
	"mirror-notes/internal/models"
)

type SkippedFile struct {
	Path string
	Err  error
}

type ImportResult struct {
	Imported []string
	Skipped  []SkippedFile
}

// ImportService turns markdown files into notes. A front matter title wins over
// the file name.
type ImportService struct {
	notes  *NoteService
	logger logger.Logger
}

func NewImportService(notes *NoteService, log logger.Logger) *ImportService {
	return &ImportService{notes: notes, logger: log}
}

type noteMatter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// Import expands the doublestar patterns, parses every match and appends the
// valid notes with one store write.
func (is *ImportService) Import(ctx context.Context, patterns []string) (ImportResult, error) {
	var result ImportResult

	paths, err := expand(patterns)
	if err != nil {
		return result, err
	}

	notes := make([]models.Note, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		note, err := readNoteFile(path)
		if err == nil {
			err = note.Validate()
		}
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Err: err})
			is.logger.Warning("ImportService", "file skipped", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}

		notes = append(notes, note)
		result.Imported = append(result.Imported, path)
	}

	if err := is.notes.AddAll(ctx, notes); err != nil {
		return ImportResult{Skipped: result.Skipped}, err
	}

	is.logger.Info("ImportService", "import finished", map[string]interface{}{
		"imported": len(result.Imported),
		"skipped":  len(result.Skipped),
	})
	return result, nil
}

func expand(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func readNoteFile(path string) (models.Note, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Note{}, err
	}
	defer f.Close()

	var matter noteMatter
	body, err := frontmatter.Parse(f, &matter)
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to parse front matter: %w", err)
	}

	title := matter.Title
	if strings.TrimSpace(title) == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return models.NewNote(title, string(body)), nil
}
