package draft

import (
	"fmt"
	"time"
)

// Mode selects how picks are acquired: auction bids or serpentine turns.
type Mode string

const (
	ModeAuction Mode = "auction"
	ModeSnake   Mode = "snake"
)

var AllModes = map[Mode]struct{}{
	ModeAuction: {},
	ModeSnake:   {},
}

// Team owns an ordered list of pick IDs. Budget accounting is derived from
// the picks so there is no second copy of "spent" to drift.
type Team struct {
	ID         string
	Name       string
	Budget     int
	IsUserTeam bool
	PickIDs    []string
	CreatedAt  time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Budget < 0 {
		return fmt.Errorf("team budget cannot be negative")
	}

	return nil
}

// Pick records one resolved selection. Price is nil for snake drafts.
// RoundNumber/PickInRound are zero for auction drafts. PlayerID is a
// back-reference for lookup, not ownership.
type Pick struct {
	ID          string
	TeamID      string
	PlayerID    string
	Price       *int
	PickNumber  int
	RoundNumber int
	PickInRound int
	Timestamp   time.Time
}

// State is the draft lifecycle record. It exists only while a draft is
// active; reset deletes it. CurrentPick counts resolved picks, so turn
// order for snake drafts is always derivable from it alone.
type State struct {
	ID            string
	LeagueName    string
	Mode          Mode
	NumTeams      int
	BudgetPerTeam int
	CurrentPick   int
	Active        bool
	ValuesStale   bool
	Order         []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s State) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("draft state id is required")
	}
	if _, ok := AllModes[s.Mode]; !ok {
		return fmt.Errorf("invalid draft mode: %s", s.Mode)
	}
	if s.NumTeams <= 0 {
		return fmt.Errorf("draft needs at least one team")
	}
	if s.CurrentPick < 0 {
		return fmt.Errorf("pick counter cannot be negative")
	}
	if s.Mode == ModeSnake && len(s.Order) != s.NumTeams {
		return fmt.Errorf("snake draft order must list all %d teams, got %d", s.NumTeams, len(s.Order))
	}

	return nil
}

// Spent sums the prices of a team's picks. Snake picks carry no price and
// contribute zero.
func Spent(picks []Pick) int {
	total := 0
	for _, p := range picks {
		if p.Price != nil {
			total += *p.Price
		}
	}
	return total
}
