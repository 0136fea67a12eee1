package catalog

import (
	_ "embed"
	"encoding/json"
	"sync"

	"marketplace-client/internal/entity"
)

//go:embed services.json
var servicesJSON []byte

var (
	once     sync.Once
	services []entity.CatalogItem
)

// Services returns the fixed marketplace catalog consumed by the assist
// engine. Loaded once; the returned slice must not be mutated.
func Services() []entity.CatalogItem {
	once.Do(func() {
		if err := json.Unmarshal(servicesJSON, &services); err != nil {
			// The embedded catalog is part of the build; a decode
			// failure here is a programming error.
			panic("catalog: invalid embedded services.json: " + err.Error())
		}
	})
	return services
}
