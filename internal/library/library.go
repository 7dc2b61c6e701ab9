package library

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"subweave/internal/config"
)

// Video is one discovered media file.
type Video struct {
	Path  string
	Dir   string
	Stem  string
	Title string
}

// Scan walks the configured library and returns every video file that
// matches the extension list, sorted by path. Exclude folders are matched by
// directory name at any depth.
func Scan(cfg config.Library) ([]Video, error) {
	extensions := make(map[string]struct{}, len(cfg.VideoExtensions))
	for _, ext := range cfg.VideoExtensions {
		extensions[strings.ToLower(ext)] = struct{}{}
	}
	excluded := make(map[string]struct{}, len(cfg.ExcludeFolders))
	for _, name := range cfg.ExcludeFolders {
		excluded[name] = struct{}{}
	}

	base := filepath.Clean(cfg.BaseDir)
	var videos []Video
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == base {
				return nil
			}
			if _, skip := excluded[d.Name()]; skip {
				return fs.SkipDir
			}
			if !cfg.Recursive {
				return fs.SkipDir
			}
			return nil
		}
		if filepath.Dir(path) == base && !cfg.ScanBaseDir {
			return nil
		}
		if _, ok := extensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		videos = append(videos, NewVideo(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan library %s: %w", base, err)
	}
	sort.Slice(videos, func(i, j int) bool { return videos[i].Path < videos[j].Path })
	return videos, nil
}

// NewVideo builds a Video record for a media file path.
func NewVideo(path string) Video {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return Video{
		Path:  path,
		Dir:   filepath.Dir(path),
		Stem:  stem,
		Title: DeriveTitle(path),
	}
}

// DeriveTitle produces a display title from a media file name: separators
// become spaces, punctuation is dropped, words are title-cased.
func DeriveTitle(sourcePath string) string {
	if sourcePath == "" {
		return "Unknown Video"
	}
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Unknown Video"
	}
	return cases.Title(language.Und).String(title)
}
