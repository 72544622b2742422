// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface and registers its routes on the
// Fiber router handed to it by the Manager.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager loads enabled features in registration order and stops at the first
// failure.
package loader
