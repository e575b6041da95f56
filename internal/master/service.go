package master

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/swissfort-mfg/entrydesk/internal/model"
)

type key struct {
	kind  model.OptionKind
	form  model.FormKind
	value string
}

// Service provides in-memory lookup over the master options.
type Service struct {
	opts []model.MasterOption
	byID map[key]model.MasterOption
}

// NewService creates a Service from a slice of options.
func NewService(opts []model.MasterOption) *Service {
	byID := make(map[key]model.MasterOption, len(opts))
	for _, o := range opts {
		byID[key{o.Kind, o.Form, o.Value}] = o
	}
	return &Service{opts: opts, byID: byID}
}

// Load reads a master CSV file and returns a Service.
func Load(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening master options: %w", err)
	}
	defer f.Close()

	opts, err := ReadOptions(f)
	if err != nil {
		return nil, fmt.Errorf("reading master options: %w", err)
	}
	return NewService(opts), nil
}

// All returns all options.
func (s *Service) All() []model.MasterOption {
	return s.opts
}

// Get returns a master or party option by value.
func (s *Service) Get(kind model.OptionKind, value string) (model.MasterOption, bool) {
	o, ok := s.byID[key{kind: kind, value: value}]
	return o, ok
}

// Exists reports whether a master or party option exists.
func (s *Service) Exists(kind model.OptionKind, value string) bool {
	_, ok := s.Get(kind, value)
	return ok
}

// ByKind returns all options of the given kind.
func (s *Service) ByKind(kind model.OptionKind) []model.MasterOption {
	var result []model.MasterOption
	for _, o := range s.opts {
		if o.Kind == kind {
			result = append(result, o)
		}
	}
	return result
}

// Categories returns the category options offered by form.
func (s *Service) Categories(form model.FormKind) []model.MasterOption {
	var result []model.MasterOption
	for _, o := range s.opts {
		if o.Kind == model.OptionCategory && o.Form == form {
			result = append(result, o)
		}
	}
	return result
}

// IsCategory reports whether value is a category of form.
func (s *Service) IsCategory(form model.FormKind, value string) bool {
	_, ok := s.byID[key{model.OptionCategory, form, value}]
	return ok
}

// Save writes the options to path, creating parent directories.
func (s *Service) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating master dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating master file: %w", err)
	}
	defer f.Close()

	if err := WriteOptions(f, s.opts); err != nil {
		return fmt.Errorf("writing master options: %w", err)
	}
	return nil
}
