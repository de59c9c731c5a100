package build

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// assetDirs are copied from the Big Book into the website.
var assetDirs = []string{"Styles", "Fonts", "Images"}

func (s *website) copyAssets() error {
	for _, dir := range assetDirs {
		if err := s.copyTree(filepath.Join(s.cfg.Paths.BigBookDir, dir), dir); err != nil {
			return err
		}
	}
	if s.cfg.Paths.ThemeDir != "" {
		return s.copyTree(filepath.Join(s.cfg.Paths.ThemeDir, "static"), "")
	}
	return nil
}

// copyTree copies the files below src to dst, a slash separated path in
// the website. A missing src is skipped.
func (s *website) copyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		in, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		return s.out.write(path.Join(dst, filepath.ToSlash(rel)), in)
	})
}
