package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"EconPull/internal/domain/models"
	domrepo "EconPull/internal/domain/repository"
)

// FSPageSource loads rendered calendar pages from a directory laid out as
// <dir>/<year>/<month>.html. The year is taken from the directory name, which
// keeps December pages resolving against their own year.
type FSPageSource struct {
	dir string
}

func NewFSPageSource(dir string) *FSPageSource {
	return &FSPageSource{dir: dir}
}

func (s *FSPageSource) LoadPages(ctx context.Context) ([]models.CalendarPage, error) {
	yearDirs, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read pages dir: %w", err)
	}

	var pages []models.CalendarPage
	for _, yd := range yearDirs {
		if !yd.IsDir() {
			continue
		}
		year, err := strconv.Atoi(yd.Name())
		if err != nil {
			continue
		}

		files, err := os.ReadDir(filepath.Join(s.dir, yd.Name()))
		if err != nil {
			return nil, fmt.Errorf("read year dir %s: %w", yd.Name(), err)
		}
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".html") {
				continue
			}
			b, err := os.ReadFile(filepath.Join(s.dir, yd.Name(), f.Name()))
			if err != nil {
				return nil, fmt.Errorf("read page %s/%s: %w", yd.Name(), f.Name(), err)
			}
			pages = append(pages, models.CalendarPage{
				HTML:  string(b),
				Month: strings.TrimSuffix(f.Name(), ".html"),
				Year:  year,
			})
		}
	}

	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Year != pages[j].Year {
			return pages[i].Year < pages[j].Year
		}
		return pages[i].Month < pages[j].Month
	})
	return pages, nil
}

// LoadPage loads a single month page, for queue-driven reprocessing.
func (s *FSPageSource) LoadPage(year int, month string) (models.CalendarPage, error) {
	path := filepath.Join(s.dir, strconv.Itoa(year), month+".html")
	b, err := os.ReadFile(path)
	if err != nil {
		return models.CalendarPage{}, fmt.Errorf("read page %s: %w", path, err)
	}
	return models.CalendarPage{HTML: string(b), Month: month, Year: year}, nil
}

var _ domrepo.PageSource = (*FSPageSource)(nil)
