package entity

// CatalogItem is a single service offering from the embedded catalog.
// Price stays a display string ("Rs  3300"); numeric comparisons parse it.
type CatalogItem struct {
	Id      string `json:"id"`
	Title   string `json:"title"`
	Price   string `json:"price"`
	Details string `json:"details"`
	Link    string `json:"link"`
}
