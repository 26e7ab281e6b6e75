// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/davetashner/riskboard/internal/incident"
)

// Shared color printers for report sections.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
)

// ColorRiskLevel colors High/Medium/Low risk labels.
func ColorRiskLevel(val string) string {
	switch incident.RiskLevel(val) {
	case incident.RiskHigh:
		return colorRed.Sprint(val)
	case incident.RiskMedium:
		return colorYellow.Sprint(val)
	case incident.RiskLow:
		return colorGreen.Sprint(val)
	default:
		return val
	}
}

// ColorStatus colors incident workflow states.
func ColorStatus(val string) string {
	switch val {
	case "Open":
		return colorRed.Sprint(val)
	case "Investigating":
		return colorYellow.Sprint(val)
	case "Resolved":
		return colorGreen.Sprint(val)
	default:
		return val
	}
}

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// writeTitle prints a bold title underlined to its own width.
func writeTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintf(w, "%s\n%s\n", SectionTitle(title), strings.Repeat("-", len(title)))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// formatPct formats a percentage with one decimal.
func formatPct(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// formatMoney formats a whole-dollar amount with thousands separators.
func formatMoney(v float64) string {
	n := int64(v + 0.5)
	if v < 0 {
		n = int64(v - 0.5)
	}
	return "$" + groupThousands(n)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// formatFloat formats a statistic with two decimals.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
