package memory

import (
	"context"
	"sync"

	"github.com/rotodraft/rotodraft/internal/domain/draft"
)

type DraftRepository struct {
	mu        sync.RWMutex
	state     draft.State
	hasState  bool
	teams     map[string]draft.Team
	teamOrder []string
	picks     map[string]draft.Pick
	pickOrder []string
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{
		teams: make(map[string]draft.Team),
		picks: make(map[string]draft.Pick),
	}
}

func (r *DraftRepository) GetState(_ context.Context) (draft.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.hasState {
		return draft.State{}, false, nil
	}

	return r.state, true, nil
}

func (r *DraftRepository) SaveState(_ context.Context, state draft.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = state
	r.hasState = true

	return nil
}

func (r *DraftRepository) DeleteState(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = draft.State{}
	r.hasState = false

	return nil
}

func (r *DraftRepository) ListTeams(_ context.Context) ([]draft.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]draft.Team, 0, len(r.teamOrder))
	for _, id := range r.teamOrder {
		out = append(out, r.teams[id])
	}

	return out, nil
}

func (r *DraftRepository) GetTeam(_ context.Context, teamID string) (draft.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[teamID]
	if !ok {
		return draft.Team{}, false, nil
	}

	return t, true, nil
}

func (r *DraftRepository) GetUserTeam(_ context.Context) (draft.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.teamOrder {
		if t := r.teams[id]; t.IsUserTeam {
			return t, true, nil
		}
	}

	return draft.Team{}, false, nil
}

func (r *DraftRepository) SaveTeam(_ context.Context, team draft.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[team.ID]; !exists {
		r.teamOrder = append(r.teamOrder, team.ID)
	}
	r.teams[team.ID] = team

	return nil
}

func (r *DraftRepository) DeleteAllTeams(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams = make(map[string]draft.Team)
	r.teamOrder = nil

	return nil
}

func (r *DraftRepository) ListPicks(_ context.Context) ([]draft.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]draft.Pick, 0, len(r.pickOrder))
	for _, id := range r.pickOrder {
		out = append(out, r.picks[id])
	}

	return out, nil
}

func (r *DraftRepository) ListPicksByTeam(_ context.Context, teamID string) ([]draft.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]draft.Pick, 0, len(r.pickOrder))
	for _, id := range r.pickOrder {
		if p := r.picks[id]; p.TeamID == teamID {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *DraftRepository) GetPick(_ context.Context, pickID string) (draft.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.picks[pickID]
	if !ok {
		return draft.Pick{}, false, nil
	}

	return p, true, nil
}

func (r *DraftRepository) SavePick(_ context.Context, pick draft.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.picks[pick.ID]; !exists {
		r.pickOrder = append(r.pickOrder, pick.ID)
	}
	r.picks[pick.ID] = pick

	return nil
}

func (r *DraftRepository) DeletePick(_ context.Context, pickID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.picks[pickID]; !ok {
		return nil
	}
	delete(r.picks, pickID)

	for i, id := range r.pickOrder {
		if id == pickID {
			r.pickOrder = append(r.pickOrder[:i], r.pickOrder[i+1:]...)
			break
		}
	}

	return nil
}

func (r *DraftRepository) DeleteAllPicks(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.picks = make(map[string]draft.Pick)
	r.pickOrder = nil

	return nil
}
