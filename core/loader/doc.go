// Package loader provides the plugin-like feature loading system of the status API.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager registers features and loads the enabled ones in order. Features
// such as 'status' and 'history' can be developed and tested in isolation.
package loader
