package domain

// Material is an item of the lab's materials catalog.
type Material struct {
	ID          string
	Name        string
	Category    string
	Quantity    string
	Status      StockStatus
	PriceRange  string
	ImageURL    string
	ExternalURL string
	Description string
	CommonUses  []string
}
