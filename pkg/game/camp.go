package game

// Camp is a player's broad faction for a match.
type Camp string

const (
	CampVillageois Camp = "Villageois"
	CampLoups      Camp = "Loups"
	CampAutres     Camp = "Autres"
)

// loupRoles are the roles aligned with the wolf camp, including those a
// player can be converted into mid-game.
var loupRoles = map[string]bool{
	"Loup":        true,
	"Loup alpha":  true,
	"Traître":     true,
	"Loup malade": true,
}

// soloRoles are special roles that win on their own and belong to neither
// main camp.
var soloRoles = map[string]bool{
	"Agent":              true,
	"Espion":             true,
	"Scientifique":       true,
	"La Bête":            true,
	"Chasseur de primes": true,
	"Vaudou":             true,
}

// soloPowers are power sub-roles that pull an otherwise-villager player into
// the solo bucket.
var soloPowers = map[string]bool{
	"Amnésique": true,
	"Pyromane":  true,
}

// CampOf derives a participation's camp from its final role and power
// sub-role. Solo roles and solo powers map to CampAutres, which is neither
// camp for streak purposes.
func CampOf(p *ParticipationRecord) Camp {
	role := p.FinalRole()
	switch {
	case soloRoles[role] || soloPowers[p.Power]:
		return CampAutres
	case loupRoles[role]:
		return CampLoups
	default:
		return CampVillageois
	}
}
