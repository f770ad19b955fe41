package service

import (
	"context"
	"time"

	"github.com/itsatony/swat_playback/internal/models"
)

// AttackService lists the attack catalog
type AttackService interface {
	Attacks(ctx context.Context) ([]models.AttackSummary, error)
}

// Attacks returns all attack intervals sorted by their numeric id
func (s *Service) Attacks(ctx context.Context) (out []models.AttackSummary, err error) {
	defer func(started time.Time) { s.observe(OpAttacks, started, err) }(time.Now())

	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	attacks := snap.Attacks.ListSorted()
	out = make([]models.AttackSummary, 0, len(attacks))
	for _, a := range attacks {
		targets := a.Targets
		if targets == nil {
			targets = []string{}
		}
		out = append(out, models.AttackSummary{
			ID:          a.ID,
			Description: a.Description,
			StartTime:   a.RawStart,
			EndTime:     a.RawEnd,
			StartMs:     a.Start.UnixMilli(),
			EndMs:       a.End.UnixMilli(),
			Targets:     targets,
		})
	}
	return out, nil
}
