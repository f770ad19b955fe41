package models

import "time"

// AttackInterval is a labeled window during which devices were manipulated.
type AttackInterval struct {
	ID          string
	Description string
	Start       time.Time
	End         time.Time
	Targets     []string
	RawStart    string
	RawEnd      string
}

// Contains reports whether t lies within the closed interval [Start, End].
func (a AttackInterval) Contains(t time.Time) bool {
	return !t.Before(a.Start) && !t.After(a.End)
}

// AttackStatus is the attack projection attached to a record lookup.
type AttackStatus struct {
	IsActive    bool     `json:"isActive"`
	AttackID    *string  `json:"attackId"`
	Description *string  `json:"description"`
	Targets     []string `json:"targets"`
}

// InactiveAttackStatus is the status for a moment with no active attack.
func InactiveAttackStatus() AttackStatus {
	return AttackStatus{Targets: []string{}}
}

// NewAttackStatus projects an active interval.
func NewAttackStatus(a AttackInterval) AttackStatus {
	id, desc := a.ID, a.Description
	targets := a.Targets
	if targets == nil {
		targets = []string{}
	}
	return AttackStatus{
		IsActive:    true,
		AttackID:    &id,
		Description: &desc,
		Targets:     targets,
	}
}

// AttackSummary is an entry of the attack catalog.
type AttackSummary struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	StartMs     int64    `json:"startMs"`
	EndMs       int64    `json:"endMs"`
	Targets     []string `json:"targets"`
}
