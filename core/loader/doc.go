// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface: a name, an enabled flag and
// a Load hook that registers its routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds registered features in order. LoadAll loads the enabled
// ones; features whose backing service is missing (no database for history,
// for example) report themselves disabled and are skipped.
package loader
