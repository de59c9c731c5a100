package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	domainerr "github.com/HootingYard/ubercoordinator/internal/domain/errors"
)

// DefaultFile is looked up in the working directory when no --config is given.
const DefaultFile = "ubercoordinator.yaml"

type Config struct {
	Paths PathsConfig `yaml:"paths"`
	Site  SiteConfig  `yaml:"site"`
	Build BuildConfig `yaml:"build"`
}

type PathsConfig struct {
	BigBookDir    string `yaml:"bigbook_dir"`
	ShowIndexFile string `yaml:"show_index_file"`
	WebsiteDir    string `yaml:"website_dir"`
	ThemeDir      string `yaml:"theme_dir"` // empty: embedded templates
	CacheFile     string `yaml:"cache_file"`
}

type SiteConfig struct {
	Title      string `yaml:"title"`
	Author     string `yaml:"author"`
	Language   string `yaml:"language"`
	Generator  string `yaml:"generator"`
	PrefaceDir string `yaml:"preface_dir"`
}

type BuildConfig struct {
	Workers int  `yaml:"workers"`
	Force   bool `yaml:"force"`
}

// Environment variables that override the configured paths.
const (
	EnvBigBookDir    = "BIG_BOOK_DIR"
	EnvShowIndexFile = "SHOW_INDEX_FILE"
	EnvWebsiteDir    = "WEBSITE_DIR"
)

const defaultRepoDir = "~/Projects/HootingYard"

func Default() Config {
	return Config{
		Paths: PathsConfig{
			BigBookDir:    filepath.Join(defaultRepoDir, "keyml", "books", "bigbook"),
			ShowIndexFile: filepath.Join(defaultRepoDir, "analysis", "index", "export", "export.yaml"),
			WebsiteDir:    filepath.Join(defaultRepoDir, "HootingYard.github.io"),
			CacheFile:     filepath.Join(".ubercoordinator", "catalog.db"),
		},
		Site: SiteConfig{
			Title:     "Hooting Yard",
			Author:    "Hooting Yard Archivists (a.k.a. The Soup Committee)",
			Language:  "en-GB",
			Generator: "ÜBERCOÖDINATOR",
		},
		Build: BuildConfig{
			Workers: 4,
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Paths.BigBookDir) == "" {
		ve.Add("paths.bigbook_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Paths.ShowIndexFile) == "" {
		ve.Add("paths.show_index_file", "must not be empty")
	} else if ext := strings.ToLower(filepath.Ext(c.Paths.ShowIndexFile)); ext != ".yaml" && ext != ".yml" {
		ve.Add("paths.show_index_file", "must be a .yaml file")
	}
	if strings.TrimSpace(c.Paths.WebsiteDir) == "" {
		ve.Add("paths.website_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Paths.CacheFile) == "" {
		ve.Add("paths.cache_file", "must not be empty")
	}

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}
	if strings.TrimSpace(c.Site.Language) == "" {
		ve.Add("site.language", "must not be empty")
	}

	if c.Build.Workers < 0 {
		ve.Add("build.workers", "must not be negative")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

// TextDir is the Big Book directory of article pages and toc.xhtml.
func (c Config) TextDir() string {
	return filepath.Join(c.Paths.BigBookDir, "Text")
}

// TOCFile is the Big Book table of contents.
func (c Config) TOCFile() string {
	return filepath.Join(c.TextDir(), "toc.xhtml")
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return finish(cfg)
}

// LoadOrDefault is Load, except that a missing file means the defaults.
func LoadOrDefault(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return finish(cfg)
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return finish(cfg)
}

func finish(cfg Config) (Config, error) {
	applyEnv(&cfg)
	cfg.expandPaths()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvBigBookDir)); v != "" {
		cfg.Paths.BigBookDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvShowIndexFile)); v != "" {
		cfg.Paths.ShowIndexFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvWebsiteDir)); v != "" {
		cfg.Paths.WebsiteDir = v
	}
}

func (c *Config) expandPaths() {
	c.Paths.BigBookDir = expandHome(c.Paths.BigBookDir)
	c.Paths.ShowIndexFile = expandHome(c.Paths.ShowIndexFile)
	c.Paths.WebsiteDir = expandHome(c.Paths.WebsiteDir)
	c.Paths.ThemeDir = expandHome(c.Paths.ThemeDir)
	c.Paths.CacheFile = expandHome(c.Paths.CacheFile)
	c.Site.PrefaceDir = expandHome(c.Site.PrefaceDir)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
