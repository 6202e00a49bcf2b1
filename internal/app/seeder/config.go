package seeder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds reference seeding settings. An empty path skips its phase;
// relative paths resolve against DataDir.
type Config struct {
	DataDir            string `yaml:"data_dir"            env:"SEEDER_DATA_DIR"`
	LanguagesPath      string `yaml:"languages_path"      env:"SEEDER_LANGUAGES_PATH"`
	CountriesPath      string `yaml:"countries_path"      env:"SEEDER_COUNTRIES_PATH"`
	MunicipalitiesPath string `yaml:"municipalities_path" env:"SEEDER_MUNICIPALITIES_PATH"`
	PostalCodesPath    string `yaml:"postal_codes_path"   env:"SEEDER_POSTAL_CODES_PATH"`
	DialCodesPath      string `yaml:"dial_codes_path"     env:"SEEDER_DIAL_CODES_PATH"`
	AreasPath          string `yaml:"areas_path"          env:"SEEDER_AREAS_PATH"`
	TaxonomyPath       string `yaml:"taxonomy_path"       env:"SEEDER_TAXONOMY_PATH"`
	BatchSize          int    `yaml:"batch_size"          env:"SEEDER_BATCH_SIZE"      env-default:"500"`
	DryRun             bool   `yaml:"dry_run"             env:"SEEDER_DRY_RUN"`
}

// LoadConfig reads the seeder YAML at path, or ENV alone when path is empty,
// then resolves file paths and validates.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("seeder config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read env: %w", err)
	}

	cfg.resolvePaths()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("seeder config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be >= 1 (got %d)", c.BatchSize)
	}
	for _, p := range c.paths() {
		if *p == "" {
			continue
		}
		if _, err := os.Stat(*p); err != nil {
			return fmt.Errorf("code list %s: %w", *p, err)
		}
	}
	return nil
}

func (c *Config) resolvePaths() {
	if c.DataDir == "" {
		return
	}
	for _, p := range c.paths() {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(c.DataDir, *p)
		}
	}
}

func (c *Config) paths() []*string {
	return []*string{
		&c.LanguagesPath, &c.CountriesPath, &c.MunicipalitiesPath,
		&c.PostalCodesPath, &c.DialCodesPath, &c.AreasPath, &c.TaxonomyPath,
	}
}
