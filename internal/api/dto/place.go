package dto

type PlaceResponse struct {
	Name      string  `json:"name"`
	Formatted string  `json:"formatted"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

type ListPlacesResponse struct {
	Places []PlaceResponse `json:"places"`
}
