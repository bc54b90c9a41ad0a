package model

// CountryID identifies a country on the game map
type CountryID string

// Continent groups countries for continent-conquest objectives
type Continent string

const (
	ContinentSouthAmerica Continent = "SOUTH_AMERICA"
	ContinentNorthAmerica Continent = "NORTH_AMERICA"
	ContinentEurope       Continent = "EUROPE"
	ContinentAsia         Continent = "ASIA"
	ContinentAfrica       Continent = "AFRICA"
	ContinentOceania      Continent = "OCEANIA"
)

// Country is an entry in the fixed map catalog. The catalog is loaded once
// at startup and read-only from then on.
type Country struct {
	ID        CountryID
	Continent Continent
}
