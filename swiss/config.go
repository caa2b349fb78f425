/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"strings"
)

const (
	DefaultWinFloor = 0.25
	// DefaultSwissRoundType is the round type value tournament files use for
	// Swiss rounds; any other value is treated as elimination.
	DefaultSwissRoundType = "3"
)

// Config holds the tunables of a standings computation.
type Config struct {
	WinFloor       float64
	SwissRoundType string
}

func DefaultConfig() Config {
	return Config{
		WinFloor:       DefaultWinFloor,
		SwissRoundType: DefaultSwissRoundType,
	}
}

func (c Config) Validate() error {
	if !(c.WinFloor >= 0 && c.WinFloor <= 1) {
		return fmt.Errorf("win floor %v out of range [0,1]", c.WinFloor)
	}
	if strings.TrimSpace(c.SwissRoundType) == "" {
		return fmt.Errorf("swiss round type must not be empty")
	}
	return nil
}

// KindOf classifies a raw round type discriminator.
func (c Config) KindOf(raw string) RoundKind {
	if strings.TrimSpace(raw) == c.SwissRoundType {
		return KindSwiss
	}
	return KindElimination
}

func (c Config) clamp(v float64) float64 {
	if v < c.WinFloor {
		return c.WinFloor
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
