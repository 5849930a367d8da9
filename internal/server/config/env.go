package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/travelboard/internal/timex"
)

// parseEnv overlays variables that are present in the environment. Unset
// variables leave the current value alone. Durations accept a day suffix
// ("7d") in addition to Go duration syntax.
func parseEnv(config *Config) error {
	opts := env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(time.Duration(0)): func(v string) (any, error) {
				return timex.ParseDuration(v)
			},
		},
	}
	if err := env.ParseWithOptions(config, opts); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}
