package catalog

import "github.com/barmonse/teg-server/internal/model"

// defaultCountries is the built-in 50-country map, grouped by continent.
// The order is canonical: clients and tests may rely on it being stable.
var defaultCountries = []model.Country{
	// South America
	{ID: "ARGENTINA", Continent: model.ContinentSouthAmerica},
	{ID: "BRAZIL", Continent: model.ContinentSouthAmerica},
	{ID: "CHILE", Continent: model.ContinentSouthAmerica},
	{ID: "URUGUAY", Continent: model.ContinentSouthAmerica},
	{ID: "PERU", Continent: model.ContinentSouthAmerica},
	{ID: "COLOMBIA", Continent: model.ContinentSouthAmerica},

	// North America
	{ID: "MEXICO", Continent: model.ContinentNorthAmerica},
	{ID: "CALIFORNIA", Continent: model.ContinentNorthAmerica},
	{ID: "OREGON", Continent: model.ContinentNorthAmerica},
	{ID: "NEW_YORK", Continent: model.ContinentNorthAmerica},
	{ID: "TERRANOVA", Continent: model.ContinentNorthAmerica},
	{ID: "LABRADOR", Continent: model.ContinentNorthAmerica},
	{ID: "ALASKA", Continent: model.ContinentNorthAmerica},
	{ID: "YUKON", Continent: model.ContinentNorthAmerica},
	{ID: "CANADA", Continent: model.ContinentNorthAmerica},
	{ID: "GREENLAND", Continent: model.ContinentNorthAmerica},

	// Europe
	{ID: "SPAIN", Continent: model.ContinentEurope},
	{ID: "FRANCE", Continent: model.ContinentEurope},
	{ID: "ITALY", Continent: model.ContinentEurope},
	{ID: "GERMANY", Continent: model.ContinentEurope},
	{ID: "POLAND", Continent: model.ContinentEurope},
	{ID: "RUSSIA", Continent: model.ContinentEurope},
	{ID: "SWEDEN", Continent: model.ContinentEurope},
	{ID: "GREAT_BRITAIN", Continent: model.ContinentEurope},
	{ID: "ICELAND", Continent: model.ContinentEurope},

	// Asia
	{ID: "ARAL", Continent: model.ContinentAsia},
	{ID: "TARTARY", Continent: model.ContinentAsia},
	{ID: "TAYMYR", Continent: model.ContinentAsia},
	{ID: "SIBERIA", Continent: model.ContinentAsia},
	{ID: "KAMCHATKA", Continent: model.ContinentAsia},
	{ID: "JAPAN", Continent: model.ContinentAsia},
	{ID: "MONGOLIA", Continent: model.ContinentAsia},
	{ID: "IRAN", Continent: model.ContinentAsia},
	{ID: "GOBI", Continent: model.ContinentAsia},
	{ID: "CHINA", Continent: model.ContinentAsia},
	{ID: "MALAYSIA", Continent: model.ContinentAsia},
	{ID: "INDIA", Continent: model.ContinentAsia},
	{ID: "TURKEY", Continent: model.ContinentAsia},
	{ID: "ISRAEL", Continent: model.ContinentAsia},
	{ID: "ARABIA", Continent: model.ContinentAsia},

	// Africa
	{ID: "SAHARA", Continent: model.ContinentAfrica},
	{ID: "EGYPT", Continent: model.ContinentAfrica},
	{ID: "ETHIOPIA", Continent: model.ContinentAfrica},
	{ID: "ZAIRE", Continent: model.ContinentAfrica},
	{ID: "SOUTH_AFRICA", Continent: model.ContinentAfrica},
	{ID: "MADAGASCAR", Continent: model.ContinentAfrica},

	// Oceania
	{ID: "AUSTRALIA", Continent: model.ContinentOceania},
	{ID: "JAVA", Continent: model.ContinentOceania},
	{ID: "SUMATRA", Continent: model.ContinentOceania},
	{ID: "BORNEO", Continent: model.ContinentOceania},
}
