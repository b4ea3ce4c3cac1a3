package config

const (
	// Configuration file paths
	ConfigPathQuestPool      = "configs/quest_pool.json"
	ConfigPathPlaceDirectory = "configs/places.json"

	// Schemas the config files are validated against at startup
	SchemaPathQuestPool      = "configs/schemas/quest_pool.schema.json"
	SchemaPathPlaceDirectory = "configs/schemas/places.schema.json"
)

// Storage backend identifiers
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// DefaultPlaceCacheSize is the default capacity of the place lookup cache.
const DefaultPlaceCacheSize = 512
