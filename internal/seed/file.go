package seed

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	"gopkg.in/yaml.v3"
)

// File is the seed document loaded by `catalogctl seed`.
type File struct {
	Entries  []EntryRecord    `yaml:"entries"`
	Trending []TrendingRecord `yaml:"trending"`
}

type EntryRecord struct {
	Title       string `yaml:"title" validate:"notblank"`
	Description string `yaml:"description" validate:"notblank"`
	Category    string `yaml:"category" validate:"notblank"`
	// Image is a data URL. ImageFile is a path relative to the seed file and
	// is encoded on import.
	Image     string     `yaml:"image"`
	ImageFile string     `yaml:"imageFile"`
	Link      string     `yaml:"link" validate:"omitempty,url"`
	CreatedAt *time.Time `yaml:"createdAt"`
}

type TrendingRecord struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	ImageFile   string `yaml:"imageFile"`
	Hidden      bool   `yaml:"hidden"`
}

type YAMLLoader struct {
	reader io.Reader
}

func NewYAMLLoader(r io.Reader) *YAMLLoader {
	return &YAMLLoader{reader: r}
}

func (l *YAMLLoader) Load() (*File, error) {
	decoder := yaml.NewDecoder(l.reader)
	decoder.KnownFields(true)

	var f File
	if err := decoder.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks what can be checked without touching the store.
func (f *File) Validate() error {
	if len(f.Trending) > domain.MaxTrendingItems {
		return fmt.Errorf("seed file has %d trending items, at most %d allowed", len(f.Trending), domain.MaxTrendingItems)
	}
	for i, e := range f.Entries {
		if e.Image != "" && e.ImageFile != "" {
			return fmt.Errorf("entry %d (%s): set either image or imageFile", i, strings.TrimSpace(e.Title))
		}
		if e.Image == "" && e.ImageFile == "" {
			return fmt.Errorf("entry %d (%s): image or imageFile is required", i, strings.TrimSpace(e.Title))
		}
	}
	return nil
}
