package game

import (
	"fmt"
	"time"
)

// GameRecord is one completed match as ingested from the game log.
// Records are append-only: once ingested they are never mutated, with the
// single exception of DisplayedID, which is derived from the id by the
// chronological ordering pass.
type GameRecord struct {
	ID          string    `json:"id"`
	StartDate   time.Time `json:"startDate"`
	MapName     string    `json:"mapName"`
	HarvestGoal int       `json:"harvestGoal"`
	HarvestDone int       `json:"harvestDone"`

	Participations []ParticipationRecord `json:"participations"`

	// DisplayedID is the dense chronological rank assigned by pkg/chrono.
	// It is always derivable from ID and never treated as ground truth.
	DisplayedID int `json:"displayedId,omitempty"`

	byPlayer map[string]*ParticipationRecord
}

// ParticipationRecord is one player's row within a game.
type ParticipationRecord struct {
	Username    string         `json:"username"`
	AccountID   string         `json:"accountId,omitempty"`
	Role        string         `json:"role"`
	RoleChanges []RoleChange   `json:"roleChanges,omitempty"`
	Power       string         `json:"power,omitempty"`
	Victorious  bool           `json:"victorious"`
	Death       *DeathRecord   `json:"death,omitempty"`
	Votes       []string       `json:"votes,omitempty"`
	TalkSeconds float64        `json:"talkSeconds"`
	TalkCount   int            `json:"talkCount"`
	Actions     []ActionRecord `json:"actions,omitempty"`
}

// RoleChange records a mid-game role swap (e.g. a villager turned wolf).
type RoleChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DeathRecord describes how, when and where a player died.
type DeathRecord struct {
	Type     string    `json:"type"`
	Timing   string    `json:"timing,omitempty"`
	Position *Position `json:"position,omitempty"`
}

// Position is a raw in-game coordinate. Zone naming is a separate,
// stateless lookup (pkg/zone); the core never interprets coordinates itself.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Action kinds recorded in a participation's action list.
const (
	ActionTransform  = "transform"
	ActionPotion     = "potion"
	ActionGadget     = "gadget"
	ActionHunterShot = "hunter_shot"
)

// ActionRecord is a single in-game action event (transform, potion, gadget,
// hunter shot).
type ActionRecord struct {
	Kind   string `json:"kind"`
	Target string `json:"target,omitempty"`
}

// PlayerID returns the stable identifier for this participation: the
// persistent account id when present, otherwise the username.
func (p *ParticipationRecord) PlayerID() string {
	if p.AccountID != "" {
		return p.AccountID
	}
	return p.Username
}

// FinalRole returns the role the player ended the game with, following any
// mid-game role changes.
func (p *ParticipationRecord) FinalRole() string {
	if n := len(p.RoleChanges); n > 0 {
		return p.RoleChanges[n-1].To
	}
	return p.Role
}

// Survived reports whether the player finished the game alive.
func (p *ParticipationRecord) Survived() bool {
	return p.Death == nil
}

// Participant returns the participation row for a player id, or nil if the
// player was not in this game. The lookup index is built on first use so
// cross-player evaluators avoid repeated linear scans.
func (g *GameRecord) Participant(playerID string) *ParticipationRecord {
	if g.byPlayer == nil {
		g.byPlayer = make(map[string]*ParticipationRecord, len(g.Participations))
		for i := range g.Participations {
			g.byPlayer[g.Participations[i].PlayerID()] = &g.Participations[i]
		}
	}
	return g.byPlayer[playerID]
}

// Validate checks the record against the data model invariants. A game with
// no participation list at all is the one condition treated as fatal by the
// batch (everything else degrades per item).
func (g *GameRecord) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game record has empty id")
	}
	if len(g.Participations) == 0 {
		return fmt.Errorf("game %s has no participations", g.ID)
	}
	return nil
}
