package service

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// ImagePool is a directory of .jpg and .png pictures for the morning digest.
type ImagePool struct {
	dir string
}

func NewImagePool(dir string) *ImagePool {
	return &ImagePool{dir: dir}
}

func (p *ImagePool) list() []string {
	var images []string
	for _, pattern := range []string{"*.jpg", "*.png"} {
		matches, err := filepath.Glob(filepath.Join(p.dir, pattern))
		if err != nil {
			slog.Error("listing images", "err", err, "dir", p.dir)
			continue
		}
		images = append(images, matches...)
	}
	sort.Strings(images)
	return images
}

// Random reads one image chosen with pick. It reports false when the pool is
// empty or unreadable.
func (p *ImagePool) Random(pick func(n int) int) (Photo, bool) {
	if p == nil || p.dir == "" {
		return Photo{}, false
	}
	images := p.list()
	if len(images) == 0 {
		return Photo{}, false
	}

	path := images[pick(len(images))]
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("reading image", "err", err, "path", path)
		return Photo{}, false
	}
	return Photo{Name: filepath.Base(path), Bytes: data}, true
}
