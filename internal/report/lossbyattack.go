// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/davetashner/riskboard/internal/aggregate"
	"github.com/davetashner/riskboard/internal/pipeline"
)

// lossByAttackSection reports total financial loss per attack type.
type lossByAttackSection struct {
	loss map[string]float64
}

func (s *lossByAttackSection) Name() string        { return "loss-by-attack" }
func (s *lossByAttackSection) Description() string { return "Total financial loss per attack type" }

func (s *lossByAttackSection) Analyze(result *pipeline.Result) error {
	if result.LossByAttack == nil {
		return fmt.Errorf("loss by attack: preset %q has no loss_amount column: %w",
			result.Info.Schema.Preset, ErrViewNotAvailable)
	}
	if len(result.LossByAttack) == 0 {
		return fmt.Errorf("loss by attack: no matching incidents: %w", ErrViewNotAvailable)
	}
	s.loss = result.LossByAttack
	return nil
}

func (s *lossByAttackSection) Render(w io.Writer) error {
	writeTitle(w, "Financial Loss by Attack Type")

	keys := aggregate.SortedKeys(s.loss)
	sort.SliceStable(keys, func(i, j int) bool {
		return s.loss[keys[i]] > s.loss[keys[j]]
	})

	var total float64
	for _, k := range keys {
		total += s.loss[k]
	}

	tbl := NewTable(
		Column{Header: "Attack Type"},
		Column{Header: "Loss", Align: AlignRight},
		Column{Header: "Share", Align: AlignRight},
	)
	for _, k := range keys {
		tbl.AddRow(k, formatMoney(s.loss[k]), formatPct(aggregate.Percentage(s.loss[k], total)))
	}
	tbl.SetFooter("Total", formatMoney(total), formatPct(aggregate.Percentage(total, total)))

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
