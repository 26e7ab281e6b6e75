// Copyright 2026 The Riskboard Authors
// SPDX-License-Identifier: MIT

// Package incident defines the core domain types for riskboard: synthetic
// incident records, the immutable table that holds them, and the row views
// that filters select from it.
package incident

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidArgument marks caller errors such as a negative record count or a
// malformed date window. Callers test for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// DateLayout is the calendar-date format used in flags, config and output.
const DateLayout = "2006-01-02"

// RiskLevel is the ordinal severity of an incident.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskLevels lists every risk level in ascending severity.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// Rank returns 1..3 for Low..High and 0 for unknown values.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

// ParseRiskLevel accepts a risk level in any letter case.
func ParseRiskLevel(s string) (RiskLevel, error) {
	for _, r := range RiskLevels {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown risk level %q (must be Low, Medium, or High): %w", s, ErrInvalidArgument)
}

// Column names a field of a Record.
type Column string

const (
	ColID             Column = "id"
	ColDate           Column = "date"
	ColAttackType     Column = "attack_type"
	ColRiskLevel      Column = "risk_level"
	ColStatus         Column = "status"
	ColDeviceType     Column = "device_type"
	ColLossAmount     Column = "loss_amount"
	ColTimeToFixHours Column = "time_to_fix_hours"
)

// AllColumns lists every known column in display order.
var AllColumns = []Column{
	ColID, ColDate, ColAttackType, ColRiskLevel,
	ColStatus, ColDeviceType, ColLossAmount, ColTimeToFixHours,
}

// Numeric reports whether the column holds numbers.
func (c Column) Numeric() bool {
	switch c {
	case ColID, ColLossAmount, ColTimeToFixHours:
		return true
	default:
		return false
	}
}

// ParseColumn validates a column name.
func ParseColumn(s string) (Column, error) {
	for _, c := range AllColumns {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown column %q: %w", s, ErrInvalidArgument)
}

// Record is a single synthetic cybersecurity incident.
type Record struct {
	ID             int       `json:"id"`
	Date           time.Time `json:"date"`
	AttackType     string    `json:"attack_type"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Status         string    `json:"status,omitempty"`
	DeviceType     string    `json:"device_type,omitempty"`
	LossAmount     int       `json:"loss_amount,omitempty"`
	TimeToFixHours int       `json:"time_to_fix_hours,omitempty"`
}

// Value renders any column of the record as text. Unknown columns yield "".
func (r Record) Value(c Column) string {
	switch c {
	case ColID:
		return strconv.Itoa(r.ID)
	case ColDate:
		return r.Date.Format(DateLayout)
	case ColAttackType:
		return r.AttackType
	case ColRiskLevel:
		return string(r.RiskLevel)
	case ColStatus:
		return r.Status
	case ColDeviceType:
		return r.DeviceType
	case ColLossAmount:
		return strconv.Itoa(r.LossAmount)
	case ColTimeToFixHours:
		return strconv.Itoa(r.TimeToFixHours)
	default:
		return ""
	}
}

// Number returns the value of a numeric column. ok is false for
// non-numeric columns.
func (r Record) Number(c Column) (v float64, ok bool) {
	switch c {
	case ColID:
		return float64(r.ID), true
	case ColLossAmount:
		return float64(r.LossAmount), true
	case ColTimeToFixHours:
		return float64(r.TimeToFixHours), true
	default:
		return 0, false
	}
}
