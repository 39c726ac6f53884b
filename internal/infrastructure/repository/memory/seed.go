package memory

import (
	"github.com/rotodraft/rotodraft/internal/domain/player"
)

// SeedPlayers returns a small projection pool covering every roster slot,
// enough to run a draft without a database or a projections import.
func SeedPlayers() []player.Player {
	return []player.Player{
		hitter("h-c-01", "Sal Contreras", "STL", []string{"C"}, 620, 155, 70, 22, 78, 5, 0.271),
		hitter("h-c-02", "Denny Raleigh", "SEA", []string{"C"}, 590, 135, 65, 30, 85, 2, 0.245),
		hitter("h-1b-01", "Trip Olson", "ATL", []string{"1B"}, 660, 175, 95, 38, 110, 6, 0.289),
		hitter("h-1b-02", "Vince Pasquel", "TOR", []string{"1B", "3B"}, 640, 168, 88, 32, 98, 4, 0.284),
		hitter("h-2b-01", "Marco Altavilla", "HOU", []string{"2B"}, 650, 172, 92, 24, 88, 18, 0.288),
		hitter("h-2b-02", "Ed Turnbull", "CLE", []string{"2B", "SS"}, 610, 150, 80, 15, 62, 30, 0.262),
		hitter("h-3b-01", "Remy Devereaux", "SD", []string{"3B"}, 655, 170, 90, 35, 105, 10, 0.282),
		hitter("h-ss-01", "Bobby Whitlock", "BAL", []string{"SS"}, 665, 180, 100, 28, 82, 25, 0.295),
		hitter("h-ss-02", "Gunnar Henriksen", "BAL", []string{"SS", "3B"}, 630, 158, 85, 33, 92, 12, 0.268),
		hitter("h-of-01", "Aaron Vasquez", "NYY", []string{"OF"}, 670, 182, 110, 45, 115, 8, 0.296),
		hitter("h-of-02", "Julian Rodrigo", "LAD", []string{"OF", "1B"}, 645, 165, 95, 36, 100, 15, 0.277),
		hitter("h-of-03", "Kyle Tucci", "HOU", []string{"OF"}, 635, 160, 88, 28, 95, 20, 0.275),
		hitter("h-of-04", "Corbin Chandler", "ARI", []string{"OF"}, 620, 152, 82, 22, 75, 35, 0.265),
		hitter("h-of-05", "Billy Ashcroft", "CIN", []string{"OF", "2B"}, 600, 140, 95, 18, 60, 55, 0.255),
		hitter("h-dh-01", "Sho Yamato", "LAA", []string{"UTIL"}, 660, 178, 105, 44, 108, 16, 0.292),
		pitcher("p-sp-01", "Pete Skellig", "PHI", []string{"SP"}, 205, 16, 0, 235, 2.95, 1.04),
		pitcher("p-sp-02", "Garret Colburn", "NYY", []string{"SP"}, 195, 14, 0, 210, 3.25, 1.09),
		pitcher("p-sp-03", "Leo Castillon", "SD", []string{"SP"}, 185, 13, 0, 225, 3.10, 1.06),
		pitcher("p-sp-04", "Zack Wheaton", "PHI", []string{"SP"}, 190, 13, 0, 195, 3.40, 1.12),
		pitcher("p-sp-05", "Miles Kershner", "LAD", []string{"SP"}, 160, 12, 0, 170, 3.15, 1.08),
		pitcher("p-rp-01", "Manny Diazado", "CLE", []string{"RP"}, 65, 4, 40, 95, 2.20, 0.95),
		pitcher("p-rp-02", "Joe Hadlock", "NYM", []string{"RP"}, 62, 3, 36, 88, 2.65, 1.01),
		pitcher("p-rp-03", "Felix Barraza", "HOU", []string{"RP"}, 68, 5, 32, 80, 2.90, 1.05),
		pitcher("p-swing-01", "Randy Okafor", "TB", []string{"SP", "RP"}, 140, 10, 8, 150, 3.30, 1.10),
	}
}

func hitter(id, name, team string, positions []string, ab, h, r, hr, rbi, sb, avg float64) player.Player {
	return player.Player{
		ID:        id,
		Name:      name,
		MLBTeam:   team,
		Positions: positions,
		Kind:      player.KindHitter,
		Batting: player.BattingStats{
			AB:  ab,
			H:   h,
			R:   r,
			HR:  hr,
			RBI: rbi,
			SB:  sb,
			AVG: avg,
		},
	}
}

func pitcher(id, name, team string, positions []string, ip, w, sv, k, era, whip float64) player.Player {
	return player.Player{
		ID:        id,
		Name:      name,
		MLBTeam:   team,
		Positions: positions,
		Kind:      player.KindPitcher,
		Pitching: player.PitchingStats{
			IP:   ip,
			W:    w,
			SV:   sv,
			K:    k,
			ERA:  era,
			WHIP: whip,
		},
	}
}
