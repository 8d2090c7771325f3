package store

import "github.com/YaBoiMega0/monguessr/internal/game"

// Single-letter storage codes, a leftover of the original schema kept for
// catalog compatibility.

func encodeMode(m game.Mode) string {
	if m == game.ModeEndless {
		return "E"
	}
	return "S"
}

func decodeMode(code string) game.Mode {
	if code == "E" {
		return game.ModeEndless
	}
	return game.ModeStandard
}

func encodeDifficulty(d game.Difficulty) string {
	switch d {
	case game.DifficultyMedium:
		return "M"
	case game.DifficultyHard:
		return "H"
	case game.DifficultyImpossible:
		return "I"
	default:
		return "E"
	}
}

func decodeDifficulty(code string) game.Difficulty {
	switch code {
	case "M":
		return game.DifficultyMedium
	case "H":
		return game.DifficultyHard
	case "I":
		return game.DifficultyImpossible
	default:
		return game.DifficultyEasy
	}
}

func encodeTags(tags []game.Tag) (indoor, outdoor, carpark int) {
	for _, t := range tags {
		switch t {
		case game.TagIndoor:
			indoor = 1
		case game.TagOutdoor:
			outdoor = 1
		case game.TagCarpark:
			carpark = 1
		}
	}
	return indoor, outdoor, carpark
}

func decodeTags(indoor, outdoor, carpark int) []game.Tag {
	var tags []game.Tag
	if indoor == 1 {
		tags = append(tags, game.TagIndoor)
	}
	if outdoor == 1 {
		tags = append(tags, game.TagOutdoor)
	}
	if carpark == 1 {
		tags = append(tags, game.TagCarpark)
	}
	return tags
}
