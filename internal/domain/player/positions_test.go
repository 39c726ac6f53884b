package player

import "testing"

func TestCanFillSlot(t *testing.T) {
	cases := []struct {
		name      string
		positions []string
		slot      string
		kind      Kind
		want      bool
	}{
		{"base position match", []string{"2B"}, "2B", KindHitter, true},
		{"base position miss", []string{"2B"}, "SS", KindHitter, false},
		{"corner infield from 1B", []string{"1B"}, "CI", KindHitter, true},
		{"corner infield from 3B", []string{"3B"}, "CI", KindHitter, true},
		{"corner infield miss", []string{"SS"}, "CI", KindHitter, false},
		{"middle infield from SS", []string{"SS"}, "MI", KindHitter, true},
		{"middle infield from 2B", []string{"2B"}, "MI", KindHitter, true},
		{"util takes any hitter", []string{"DH"}, "UTIL", KindHitter, true},
		{"util rejects pitchers", []string{"SP"}, "UTIL", KindPitcher, false},
		{"p takes any pitcher", []string{"RP"}, "P", KindPitcher, true},
		{"p rejects hitters", []string{"OF"}, "P", KindHitter, false},
		{"multi position", []string{"C", "1B"}, "C", KindHitter, true},
	}

	for _, tc := range cases {
		if got := CanFillSlot(tc.positions, tc.slot, tc.kind); got != tc.want {
			t.Fatalf("%s: CanFillSlot(%v, %s) = %v, want %v", tc.name, tc.positions, tc.slot, got, tc.want)
		}
	}
}

func TestExpandSlot(t *testing.T) {
	if got := ExpandSlot("CI"); len(got) != 2 || got[0] != "1B" || got[1] != "3B" {
		t.Fatalf("ExpandSlot(CI) = %v", got)
	}
	if got := ExpandSlot("UTIL"); len(got) != 0 {
		t.Fatalf("ExpandSlot(UTIL) should be empty, got %v", got)
	}
	if got := ExpandSlot("SS"); len(got) != 1 || got[0] != "SS" {
		t.Fatalf("ExpandSlot(SS) = %v", got)
	}
}

func TestPlayerValidate(t *testing.T) {
	valid := Player{ID: "p1", Name: "Someone", Kind: KindHitter}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid player rejected: %v", err)
	}

	cases := []struct {
		name   string
		player Player
	}{
		{"missing id", Player{Name: "x", Kind: KindHitter}},
		{"missing name", Player{ID: "p1", Kind: KindHitter}},
		{"bad kind", Player{ID: "p1", Name: "x", Kind: Kind("coach")}},
	}
	for _, tc := range cases {
		if err := tc.player.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestPlayerStat(t *testing.T) {
	p := Player{
		Batting:  BattingStats{R: 90, HR: 25, RBI: 88, SB: 11, AVG: 0.281},
		Pitching: PitchingStats{W: 14, SV: 2, K: 180, ERA: 3.40, WHIP: 1.15},
	}

	cases := map[string]float64{
		"r": 90, "hr": 25, "rbi": 88, "sb": 11, "avg": 0.281,
		"w": 14, "sv": 2, "k": 180, "era": 3.40, "whip": 1.15,
		"unknown": 0,
	}
	for code, want := range cases {
		if got := p.Stat(code); got != want {
			t.Fatalf("Stat(%s) = %v, want %v", code, got, want)
		}
	}
}
