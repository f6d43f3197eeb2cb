package maps

// LookupRequest is the query of GET /api/v1/maps/address-lookup.
type LookupRequest struct {
	Query   string `form:"q" binding:"required,min=3"`
	Country string `form:"country" binding:"omitempty,len=2,alpha"`
}

// AddressSuggestion is one geocoded candidate. Latitude and Longitude can be sent
// unchanged as the site coordinates of an estimate.
type AddressSuggestion struct {
	Label       string  `json:"label"`
	Street      string  `json:"street,omitempty"`
	HouseNumber string  `json:"houseNumber,omitempty"`
	ZipCode     string  `json:"zipCode,omitempty"`
	City        string  `json:"city,omitempty"`
	Country     string  `json:"country,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type nominatimAddress struct {
	Road         string `json:"road"`
	HouseNumber  string `json:"house_number"`
	Postcode     string `json:"postcode"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Hamlet       string `json:"hamlet"`
	Country      string `json:"country"`
}

// nominatimResponse mirrors the relevant parts of the OSM search payload.
type nominatimResponse struct {
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
}
