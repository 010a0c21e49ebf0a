// Package quota approximates how much browser-equivalent storage the
// persisted document occupies. The estimate mirrors the localStorage cost
// model: two bytes per UTF-16 code unit of every stored key and value.
package quota

import (
	"context"
	"fmt"
	"unicode/utf16"

	"github.com/seedkitapp/seedkit-backend/pkg/config"
	"github.com/seedkitapp/seedkit-backend/pkg/kv"
	"github.com/shopspring/decimal"
)

const bytesPerMB = 1 << 20

// Snapshot is one advisory usage reading.
type Snapshot struct {
	UsedMB      float64 `json:"usedMB"`
	MaxMB       float64 `json:"maxMB"`
	UsedPercent float64 `json:"usedPercent"`
	Warn        bool    `json:"warn"`
	Block       bool    `json:"block"`
}

// Estimator computes usage by walking every key the substrate holds for this
// app. Readings are recomputed on demand; nothing is cached.
type Estimator struct {
	substrate kv.Substrate
	maxMB     float64
	warnPct   float64
	blockPct  float64
}

func NewEstimator(substrate kv.Substrate, cfg config.StorageConfig) (*Estimator, error) {
	if substrate == nil {
		return nil, fmt.Errorf("substrate is required")
	}
	if cfg.MaxMB <= 0 {
		return nil, fmt.Errorf("max MB must be positive")
	}
	return &Estimator{
		substrate: substrate,
		maxMB:     cfg.MaxMB,
		warnPct:   cfg.WarnPercent,
		blockPct:  cfg.BlockPercent,
	}, nil
}

// UsageMB sums 2 bytes per UTF-16 code unit across all stored keys and
// values, converts to megabytes and rounds half-up to two decimals.
func (e *Estimator) UsageMB(ctx context.Context) (float64, error) {
	var units int64
	err := e.substrate.ForEach(ctx, func(key, value string) error {
		units += utf16Units(key) + utf16Units(value)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking stored keys: %w", err)
	}

	mb := decimal.NewFromInt(units * 2).
		Div(decimal.NewFromInt(bytesPerMB)).
		Round(2)
	out, _ := mb.Float64()
	return out, nil
}

// Snapshot combines the current usage with the configured ceiling and the
// warn/block flags the dashboard and the write guard act on.
func (e *Estimator) Snapshot(ctx context.Context) (Snapshot, error) {
	used, err := e.UsageMB(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	percent := decimal.NewFromFloat(used).
		Div(decimal.NewFromFloat(e.maxMB)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	pct, _ := percent.Float64()

	return Snapshot{
		UsedMB:      used,
		MaxMB:       e.maxMB,
		UsedPercent: pct,
		Warn:        pct >= e.warnPct,
		Block:       pct >= e.blockPct,
	}, nil
}

// utf16Units counts UTF-16 code units the way JavaScript's String.length
// does: supplementary-plane runes cost two units.
func utf16Units(s string) int64 {
	var n int64
	for _, r := range s {
		if utf16.IsSurrogate(r) || r > 0xFFFF {
			n += 2
			continue
		}
		n++
	}
	return n
}
