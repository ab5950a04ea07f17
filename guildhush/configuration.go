// SPDX-License-Identifier: GPL-3.0-or-later
package guildhush

import (
	"fmt"
	"math"
	"time"

	"github.com/CrawX/go-guildhush/interceptor"
	"github.com/CrawX/go-guildhush/visibility"
)

type ConfigFunc func(c *configuration) error

// SuppressionOff leaves events of hidden guilds untouched. Hidden guilds are still hidden from the
// guild list.
func SuppressionOff() ConfigFunc {
	return func(c *configuration) error {
		c.SuppressionOff = true
		return nil
	}
}

func OnlyHideInStream() ConfigFunc {
	return func(c *configuration) error {
		c.OnlyHideInStream = true
		return nil
	}
}

func ShowInQuickSwitcher() ConfigFunc {
	return func(c *configuration) error {
		c.ShowInQuickSwitcher = true
		return nil
	}
}

func AutoClearMentions() ConfigFunc {
	return func(c *configuration) error {
		c.AutoClearMentions = true
		return nil
	}
}

func RateLimit(perSecond int) ConfigFunc {
	return func(c *configuration) error {
		if perSecond <= 0 {
			return fmt.Errorf("RateLimit must be greater than 0")
		}
		if uint64(perSecond) > math.MaxUint32 {
			return fmt.Errorf("RateLimit must not exceed %d", uint64(math.MaxUint32))
		}

		if c.NoRateLimit {
			return fmt.Errorf("RateLimit and NoRateLimit cannot be used at the same time")
		}

		c.RateLimit = perSecond
		return nil
	}
}

func NoRateLimit() ConfigFunc {
	return func(c *configuration) error {
		if c.RateLimit != 0 {
			return fmt.Errorf("RateLimit and NoRateLimit cannot be used at the same time")
		}

		c.NoRateLimit = true
		return nil
	}
}

func Visibility(sink visibility.Sink) ConfigFunc {
	return func(c *configuration) error {
		if sink == nil {
			return fmt.Errorf("Visibility sink cannot be nil")
		}

		c.Sink = sink
		return nil
	}
}

func Scheduler(scheduler interceptor.Scheduler) ConfigFunc {
	return func(c *configuration) error {
		if scheduler == nil {
			return fmt.Errorf("Scheduler cannot be nil")
		}

		c.Scheduler = scheduler
		return nil
	}
}

func Clock(now func() time.Time) ConfigFunc {
	return func(c *configuration) error {
		if now == nil {
			return fmt.Errorf("Clock cannot be nil")
		}

		c.Clock = now
		return nil
	}
}

type configuration struct {
	SuppressionOff      bool
	OnlyHideInStream    bool
	ShowInQuickSwitcher bool
	AutoClearMentions   bool

	RateLimit   int
	NoRateLimit bool

	Sink      visibility.Sink
	Scheduler interceptor.Scheduler
	Clock     func() time.Time
}
