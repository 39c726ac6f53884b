package memory

import (
	"context"
	"sync"

	"github.com/rotodraft/rotodraft/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	items  map[string]player.Player
	orders []string
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	orders := make([]string, 0, len(players))

	for _, p := range players {
		items[p.ID] = p
		orders = append(orders, p.ID)
	}

	return &PlayerRepository{
		items:  items,
		orders: orders,
	}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *PlayerRepository) ListByKind(_ context.Context, kind player.Kind) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.orders))
	for _, id := range r.orders {
		if p := r.items[id]; p.Kind == kind {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PlayerRepository) ListUndrafted(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.orders))
	for _, id := range r.orders {
		if p := r.items[id]; !p.Drafted {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PlayerRepository) ListUndraftedByKind(_ context.Context, kind player.Kind) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.orders))
	for _, id := range r.orders {
		if p := r.items[id]; !p.Drafted && p.Kind == kind {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	if !ok {
		return player.Player{}, false, nil
	}

	return p, true, nil
}

func (r *PlayerRepository) GetByPickID(_ context.Context, pickID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		if p := r.items[id]; p.PickID == pickID && pickID != "" {
			return p, true, nil
		}
	}

	return player.Player{}, false, nil
}

func (r *PlayerRepository) CountDraftedByKind(_ context.Context, kind player.Kind) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, id := range r.orders {
		if p := r.items[id]; p.Drafted && p.Kind == kind {
			count++
		}
	}

	return count, nil
}

func (r *PlayerRepository) UpdateValues(_ context.Context, updates []player.ValueUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range updates {
		p, ok := r.items[u.PlayerID]
		if !ok {
			continue
		}
		p.SGP = u.SGP
		p.Breakdown = u.Breakdown
		p.DollarValue = u.DollarValue
		r.items[u.PlayerID] = p
	}

	return nil
}

func (r *PlayerRepository) SetDrafted(_ context.Context, playerID, pickID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[playerID]
	if !ok {
		return nil
	}
	p.Drafted = true
	p.PickID = pickID
	r.items[playerID] = p

	return nil
}

func (r *PlayerRepository) ClearDrafted(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[playerID]
	if !ok {
		return nil
	}
	p.Drafted = false
	p.PickID = ""
	r.items[playerID] = p

	return nil
}

func (r *PlayerRepository) ClearAllDrafted(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.items {
		p.Drafted = false
		p.PickID = ""
		r.items[id] = p
	}

	return nil
}

func (r *PlayerRepository) SetNote(_ context.Context, playerID, note string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[playerID]
	if !ok {
		return nil
	}
	p.Note = note
	r.items[playerID] = p

	return nil
}
