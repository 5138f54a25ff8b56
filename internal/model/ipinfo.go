package model

// IPInfoResponse is the subset of the ipinfo.io payload the resolver uses.
// Loc is "lat,lon" as a single string.
type IPInfoResponse struct {
	IP      string `json:"ip"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
	Loc     string `json:"loc"`
}
