// Package loader provides the feature loading system.
//
// Each feature (bets, draws, verification, integrity) implements Feature and
// registers its own routes. The start command registers them on a Manager and
// calls LoadAll once the global middleware is in place.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
