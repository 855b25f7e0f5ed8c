package models

// CarouselImage is a promotional slide shown on the storefront landing view.
type CarouselImage struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
