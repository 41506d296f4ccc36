package dashboard

// PlotlyURL is the Plotly.js bundle loaded by the page.
const PlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// Page is the static text of the dashboard page.
type Page struct {
	Title   string
	Heading string
	Label   string
}

// DefaultPage returns the Spanish page text.
func DefaultPage() Page {
	return Page{
		Title:   "Mapa Climático Interactivo",
		Heading: "Mapa Climático por Municipio y Año",
		Label:   "Selecciona un año:",
	}
}

type pageData struct {
	Page
	Years     []int
	Default   int
	FigureURL string
	PlotlyURL string
}
