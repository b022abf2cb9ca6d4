package config

// Default values used when the corresponding environment variable is unset.
const (
	DefaultPort            = 8080
	DefaultQuickAccessSize = 10
	DefaultGeneralSize     = 40
	DefaultStackCapacity   = 99
	DefaultStartingGold    = 500
)

// Configuration file paths
const (
	DefaultItemsPath    = "configs/items.json"
	DefaultCatalogsPath = "configs/catalogs"
)
