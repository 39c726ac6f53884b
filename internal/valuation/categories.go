package valuation

import (
	"strings"

	"github.com/rotodraft/rotodraft/internal/domain/player"
)

// CategoryKind decides how a category's SGP contribution is computed.
type CategoryKind int

const (
	// Counting stats compare raw totals against replacement (R, HR, W, K...).
	Counting CategoryKind = iota
	// Rate stats compare hits against expected hits at the replacement
	// rate, weighted by at-bats (AVG).
	Rate
	// Ratio stats invert (lower is better) and weight by innings (ERA, WHIP).
	Ratio
)

// Category pairs a lowercase stat code with its scoring behavior.
type Category struct {
	Code string
	Kind CategoryKind
}

// Categories resolves configured category names into typed categories for a
// pool. The dispatch happens once here; the engine never compares stat
// strings again.
func Categories(kind player.Kind, codes []string) []Category {
	out := make([]Category, 0, len(codes))
	for _, code := range codes {
		code = strings.ToLower(code)
		out = append(out, Category{Code: code, Kind: categoryKind(kind, code)})
	}
	return out
}

func categoryKind(kind player.Kind, code string) CategoryKind {
	switch {
	case kind == player.KindHitter && code == "avg":
		return Rate
	case kind == player.KindPitcher && (code == "era" || code == "whip"):
		return Ratio
	default:
		return Counting
	}
}
