// Provide test utilities for the common package
package common

// Initialize a new config object for unittests
func NewTestConfig() Config {
	p := NewConfig([]byte("herehere-unittest"))

	p.HTTPCacheAdapter = HTTPCacheMemoryAdapterName

	return p
}
