package engine

import (
	"time"

	"github.com/muhammadchandra19/matchbook/pkg/config"
	"github.com/muhammadchandra19/matchbook/pkg/util"
)

// Options represents configuration options for the Engine.
type Options struct {
	// ReadBackoff is the pause after a failed feed read.
	ReadBackoff time.Duration
	// StatsInterval is how often book gauges are refreshed and stats logged.
	StatsInterval time.Duration
	// PublishBestPrice enables best bid and ask updates.
	PublishBestPrice bool
	// Clock stamps best price updates. It should be the book's clock.
	Clock util.Clock
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		ReadBackoff:      100 * time.Millisecond,
		StatsInterval:    5 * time.Second,
		PublishBestPrice: true,
		Clock:            util.RealClock{},
	}
}

// OptionsFromConfig maps the engine section of the service config.
func OptionsFromConfig(cfg config.EngineConfig, clock util.Clock) *Options {
	options := DefaultEngineOptions()
	if cfg.ReadBackoff > 0 {
		options.ReadBackoff = cfg.ReadBackoff
	}
	if cfg.StatsInterval > 0 {
		options.StatsInterval = cfg.StatsInterval
	}
	options.PublishBestPrice = cfg.PublishBestPrice
	if clock != nil {
		options.Clock = clock
	}
	return options
}
