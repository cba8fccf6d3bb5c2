package domain

import "mycomparer/helpers"

// Credentials carries the per-instance auth material. AppID is only used by the
// algolia-protocol engines (flapjack, algolia).
type Credentials struct {
	AppID  string
	APIKey string
}

// Capabilities flags optional engine features that the rendering layer may surface.
type Capabilities struct {
	Sort   bool
	Facets bool
}

// BackendInstance is one configured search backend. Immutable after the registry is loaded.
// TransportSecure is derived from the Address scheme at load time (no scheme means https).
type BackendInstance struct {
	ID              string
	Engine          EngineKind
	Region          string
	Address         string
	Port            int
	TransportSecure bool
	Credentials     Credentials
	Enabled         bool
	Capabilities    Capabilities
	Note            string
}

// IsLocal reports whether the instance lives in the local region.
func (i BackendInstance) IsLocal() bool {
	return i.Region == LocalRegion
}

// IsLoopback reports whether the instance address points at localhost or 127.0.0.1.
func (i BackendInstance) IsLoopback() bool {
	return helpers.IsLoopbackAddress(i.Address)
}

// BaseURL returns the address with a scheme, defaulting to https, and without a trailing slash.
func (i BackendInstance) BaseURL() string {
	return helpers.BaseURL(i.Address)
}
