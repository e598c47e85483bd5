package model

const (
	// BasePrice is the flat installation charge applied to every quote.
	BasePrice = 3500

	MaxFilmSelections = 2
)

// FilmPrices maps the catalog film codes to their prices in THB.
var FilmPrices = map[string]int{
	"ceramic-70":  2500,
	"ceramic-50":  3000,
	"ceramic-30":  3500,
	"ppf-full":    15000,
	"ppf-partial": 8000,
}

// Addon is an extra line item picked on the form, priced as given.
type Addon struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}
