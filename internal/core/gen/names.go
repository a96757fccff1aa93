package gen

import (
	"fmt"
	"math/rand"
)

// Name pools for generated players and coaches. Combinations are drawn at
// random and deduplicated; collisions get a numeric suffix, so the pools
// never run out.
var firstNames = []string{
	"Aleksi", "Anders", "Andrei", "Anton", "Artturi", "Brady", "Brandon",
	"Carter", "Cole", "Connor", "Dmitri", "Dylan", "Elias", "Emil", "Erik",
	"Filip", "Gabriel", "Henrik", "Hunter", "Ivan", "Jake", "Jakub", "Janne",
	"Jesse", "Joel", "Jonas", "Juraj", "Kasper", "Kirill", "Lars", "Leon",
	"Liam", "Logan", "Lukas", "Marcus", "Martin", "Mats", "Matvei", "Mikael",
	"Mikko", "Nathan", "Niklas", "Nikolai", "Noah", "Oliver", "Ondrej",
	"Oskar", "Patrik", "Pavel", "Petr", "Rasmus", "Roman", "Ryan", "Sami",
	"Sebastian", "Sergei", "Simon", "Teemu", "Tomas", "Tyler", "Viktor",
	"Ville", "Wyatt", "Zach",
}

var lastNames = []string{
	"Aaltonen", "Andersson", "Bergstrom", "Blomqvist", "Bouchard", "Brennan",
	"Carlsson", "Cermak", "Dahlberg", "Dvorak", "Ek", "Eriksson", "Fedorov",
	"Fischer", "Forsberg", "Gagnon", "Gallagher", "Hajek", "Hakala",
	"Hallberg", "Hamrlik", "Heikkinen", "Holmgren", "Horak", "Ivanov",
	"Jarvinen", "Jensen", "Johansson", "Kapanen", "Karlsson", "Kowalski",
	"Kozlov", "Kucera", "Laine", "Larsson", "Lehtinen", "Lindgren",
	"Lindholm", "MacLean", "Makinen", "Marek", "Morozov", "Nemec", "Niemi",
	"Nilsson", "Novak", "Nurminen", "O'Brien", "Olsen", "Pedersen",
	"Petrov", "Pokorny", "Rantanen", "Reinhart", "Saarinen", "Sandberg",
	"Sedlak", "Smirnov", "Sokolov", "Sorensen", "Stastny", "Sullivan",
	"Svoboda", "Tanaka", "Thompson", "Tkachuk", "Urban", "Vachon",
	"Virtanen", "Volkov", "Wallin", "Westerlund", "Zadina", "Zaitsev",
}

// uniqueName draws a First Last combination not yet in seen.
func uniqueName(rng *rand.Rand, seen map[string]bool) string {
	base := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
	if !seen[base] {
		seen[base] = true
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s %d", base, i)
		if !seen[candidate] {
			seen[candidate] = true
			return candidate
		}
	}
}

// HockeyCountries is the fixed 32-team league, ordered by conference and
// division blocks of four.
var HockeyCountries = []string{
	// Eastern Conference
	"Canada", "United States", "Great Britain", "France", // Atlantic
	"Sweden", "Finland", "Norway", "Denmark", // Nordic
	"Russia", "Czech Republic", "Slovakia", "Belarus", // Slavic
	"Germany", "Switzerland", "Austria", "Italy", // Alpine
	// Western Conference
	"Latvia", "Estonia", "Lithuania", "Poland", // Baltic
	"Slovenia", "Croatia", "Hungary", "Romania", // Danube
	"Kazakhstan", "Ukraine", "Japan", "South Korea", // Asia-Pacific
	"Netherlands", "Belgium", "Spain", "China", // Western Europe
}
