// Package entities defines the core domain types of the Tickgate plugin
// protocol: plugin handles, capability masks, the host data block passed at
// load time, and plugin descriptors. These types double as JSON wire DTOs
// where the host and guest exchange them.
package entities
