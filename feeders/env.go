package feeders

import "github.com/golobby/config/v3/pkg/feeder"

// EnvFeeder reads CLASSSPACE_* environment variables, used as the final
// override layer on top of a file-loaded BootConfig.
type EnvFeeder = feeder.Env

// NewEnvFeeder creates a new EnvFeeder that reads from environment variables
func NewEnvFeeder() EnvFeeder {
	return EnvFeeder{}
}
