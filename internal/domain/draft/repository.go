package draft

import "context"

// Repository describes draft ledger persistence needs from use cases.
// There is at most one State at a time.
type Repository interface {
	GetState(ctx context.Context) (State, bool, error)
	SaveState(ctx context.Context, state State) error
	DeleteState(ctx context.Context) error

	ListTeams(ctx context.Context) ([]Team, error)
	GetTeam(ctx context.Context, teamID string) (Team, bool, error)
	GetUserTeam(ctx context.Context) (Team, bool, error)
	SaveTeam(ctx context.Context, team Team) error
	DeleteAllTeams(ctx context.Context) error

	ListPicks(ctx context.Context) ([]Pick, error)
	ListPicksByTeam(ctx context.Context, teamID string) ([]Pick, error)
	GetPick(ctx context.Context, pickID string) (Pick, bool, error)
	SavePick(ctx context.Context, pick Pick) error
	DeletePick(ctx context.Context, pickID string) error
	DeleteAllPicks(ctx context.Context) error
}
