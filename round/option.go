// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package round

import (
	"fmt"
	"runtime"
)

// Option allows tuning snapshot and round construction.
type Option func(*config) error

type config struct {
	nbTasks int
}

// WithNbTasks bounds the number of goroutines used for per-column proof generation.
// Defaults to runtime.NumCPU().
func WithNbTasks(nbTasks int) Option {
	return func(c *config) error {
		if nbTasks < 1 {
			return fmt.Errorf("invalid nbTasks %d", nbTasks)
		}
		c.nbTasks = nbTasks
		return nil
	}
}

func newConfig(opts ...Option) (config, error) {
	c := config{nbTasks: runtime.NumCPU()}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return c, err
		}
	}
	return c, nil
}
