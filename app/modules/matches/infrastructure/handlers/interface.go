package matchhandlers

import "net/http"

// Handlers is the HTTP surface of the matches module.
type Handlers interface {
	HandleDashboard(w http.ResponseWriter, r *http.Request)
	HandlePlayers(w http.ResponseWriter, r *http.Request)
	HandleCountries(w http.ResponseWriter, r *http.Request)
	HandleStats(w http.ResponseWriter, r *http.Request)
	HandleCharts(w http.ResponseWriter, r *http.Request)
	HandleChartImage(w http.ResponseWriter, r *http.Request)
	HandleHealth(w http.ResponseWriter, r *http.Request)
}
