package catalog

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/barmonse/teg-server/internal/model"
	"github.com/barmonse/teg-server/internal/storage"
)

// Service provides the fixed country and objective catalogs. Countries are
// loaded once (built-in map, storage, or a data file) and read-only after
// that; objectives are the fixed model enum.
type Service struct {
	storage storage.Storage

	mu        sync.RWMutex
	countries []model.Country
	loaded    bool
}

// New creates a new catalog Service
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
	}
}

// LoadDefaults loads the built-in country map and persists it to storage
func (s *Service) LoadDefaults(ctx context.Context) error {
	return s.load(ctx, defaultCountries)
}

// LoadFromStorage loads the country catalog previously persisted to storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	countries, err := s.storage.GetCountries(ctx)
	if err != nil {
		return err
	}
	s.cache(countries)
	return nil
}

// LoadFromFile loads the country catalog from a file, one
// "COUNTRY CONTINENT" pair per line, and persists it to storage
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var countries []model.Country
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("catalog line %q: want COUNTRY CONTINENT", line)
		}
		countries = append(countries, model.Country{
			ID:        model.CountryID(fields[0]),
			Continent: model.Continent(fields[1]),
		})
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return s.load(ctx, countries)
}

func (s *Service) load(ctx context.Context, countries []model.Country) error {
	if err := s.storage.SaveCountries(ctx, countries); err != nil {
		return err
	}
	s.cache(countries)
	return nil
}

func (s *Service) cache(countries []model.Country) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries = make([]model.Country, len(countries))
	copy(s.countries, countries)
	s.loaded = true
}

// AllCountries returns the ordered country catalog
func (s *Service) AllCountries(ctx context.Context) ([]model.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, model.ErrCatalogNotLoaded
	}
	result := make([]model.Country, len(s.countries))
	copy(result, s.countries)
	return result, nil
}

// AllObjectives returns the ordered objective catalog
func (s *Service) AllObjectives() []model.Objective {
	result := make([]model.Objective, len(model.AllObjectives))
	copy(result, model.AllObjectives)
	return result
}

// IsLoaded returns whether the country catalog has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// CountryCount returns the number of countries in the catalog
func (s *Service) CountryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.countries)
}
