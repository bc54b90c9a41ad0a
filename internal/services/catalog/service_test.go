package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/barmonse/teg-server/internal/model"
	"github.com/barmonse/teg-server/internal/storage/memory"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func (s *CatalogServiceTestSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (s *CatalogServiceTestSuite) TestAllCountriesBeforeLoad() {
	_, err := s.service.AllCountries(s.ctx)
	s.ErrorIs(err, model.ErrCatalogNotLoaded)
}

func (s *CatalogServiceTestSuite) TestLoadDefaults() {
	err := s.service.LoadDefaults(s.ctx)
	s.Require().NoError(err)

	countries, err := s.service.AllCountries(s.ctx)
	s.Require().NoError(err)
	s.Len(countries, 50)

	continents := make(map[model.Continent]int)
	for _, c := range countries {
		continents[c.Continent]++
	}
	s.Len(continents, 6)
	s.Equal(6, continents[model.ContinentSouthAmerica])
	s.Equal(10, continents[model.ContinentNorthAmerica])
	s.Equal(9, continents[model.ContinentEurope])
	s.Equal(15, continents[model.ContinentAsia])
	s.Equal(6, continents[model.ContinentAfrica])
	s.Equal(4, continents[model.ContinentOceania])
}

func (s *CatalogServiceTestSuite) TestLoadDefaultsPersistsToStorage() {
	err := s.service.LoadDefaults(s.ctx)
	s.Require().NoError(err)

	stored, err := s.storage.GetCountries(s.ctx)
	s.Require().NoError(err)
	s.Len(stored, 50)
}

func (s *CatalogServiceTestSuite) TestLoadFromStorage() {
	err := s.service.LoadDefaults(s.ctx)
	s.Require().NoError(err)

	fresh := New(s.storage)
	s.False(fresh.IsLoaded())

	err = fresh.LoadFromStorage(s.ctx)
	s.Require().NoError(err)
	s.True(fresh.IsLoaded())
	s.Equal(50, fresh.CountryCount())
}

func (s *CatalogServiceTestSuite) TestAllCountriesStableOrder() {
	err := s.service.LoadDefaults(s.ctx)
	s.Require().NoError(err)

	first, err := s.service.AllCountries(s.ctx)
	s.Require().NoError(err)
	second, err := s.service.AllCountries(s.ctx)
	s.Require().NoError(err)
	s.Equal(first, second)

	// Callers get a copy, not the cached slice
	first[0].ID = "MUTATED"
	third, err := s.service.AllCountries(s.ctx)
	s.Require().NoError(err)
	s.NotEqual(first[0].ID, third[0].ID)
}

func (s *CatalogServiceTestSuite) TestLoadFromFile() {
	path := filepath.Join(s.T().TempDir(), "countries.txt")
	content := "# test map\nARGENTINA SOUTH_AMERICA\nBRAZIL SOUTH_AMERICA\n\nSPAIN EUROPE\n"
	err := os.WriteFile(path, []byte(content), 0o644)
	s.Require().NoError(err)

	err = s.service.LoadFromFile(s.ctx, path)
	s.Require().NoError(err)

	countries, err := s.service.AllCountries(s.ctx)
	s.Require().NoError(err)
	s.Len(countries, 3)
	s.Equal(model.CountryID("ARGENTINA"), countries[0].ID)
	s.Equal(model.ContinentEurope, countries[2].Continent)
}

func (s *CatalogServiceTestSuite) TestLoadFromFileMalformedLine() {
	path := filepath.Join(s.T().TempDir(), "countries.txt")
	err := os.WriteFile(path, []byte("ARGENTINA\n"), 0o644)
	s.Require().NoError(err)

	err = s.service.LoadFromFile(s.ctx, path)
	s.Error(err)
}

func (s *CatalogServiceTestSuite) TestAllObjectives() {
	objectives := s.service.AllObjectives()
	s.Len(objectives, len(model.AllObjectives))

	destroys := 0
	for _, o := range objectives {
		if o.IsDestroy() {
			destroys++
		}
	}
	s.Equal(6, destroys)
	s.Contains(objectives, model.ObjectiveConquer30Countries)
}
