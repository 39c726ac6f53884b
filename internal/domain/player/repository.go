package player

import "context"

// ValueUpdate carries one player's recomputed valuation back to storage.
type ValueUpdate struct {
	PlayerID    string
	SGP         float64
	Breakdown   map[string]float64
	DollarValue float64
}

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	ListByKind(ctx context.Context, kind Kind) ([]Player, error)
	ListUndrafted(ctx context.Context) ([]Player, error)
	ListUndraftedByKind(ctx context.Context, kind Kind) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByPickID(ctx context.Context, pickID string) (Player, bool, error)
	CountDraftedByKind(ctx context.Context, kind Kind) (int, error)
	UpdateValues(ctx context.Context, updates []ValueUpdate) error
	SetDrafted(ctx context.Context, playerID, pickID string) error
	ClearDrafted(ctx context.Context, playerID string) error
	ClearAllDrafted(ctx context.Context) error
	SetNote(ctx context.Context, playerID, note string) error
}
