package domain

// ProductMetadata is what the product page fetcher could extract.
type ProductMetadata struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	ImageURL string `json:"image_url"`
}
