package undertone

import "sort"

var palettes = map[string]map[string][]string{
	"Spring": {
		Warm:    {"#FF7F50", "#FFD700", "#98FB98", "#FFA07A", "#F0E68C", "#40E0D0", "#FFDAB9"},
		Neutral: {"#F4A460", "#FFE4B5", "#90EE90", "#FA8072", "#EEE8AA"},
	},
	"Summer": {
		Cool:    {"#B0C4DE", "#DDA0DD", "#87CEEB", "#E6E6FA", "#BC8F8F", "#778899", "#FFB6C1"},
		Neutral: {"#C0C0C0", "#D8BFD8", "#ADD8E6", "#F5F5DC", "#B0E0E6"},
	},
	"Autumn": {
		Warm:    {"#8B4513", "#D2691E", "#556B2F", "#B8860B", "#800000", "#CD853F", "#808000"},
		Neutral: {"#A0522D", "#6B8E23", "#DEB887", "#BDB76B", "#8FBC8F"},
	},
	"Winter": {
		Cool: {"#000080", "#DC143C", "#FFFFFF", "#000000", "#4B0082", "#008080", "#FF00FF"},
	},
}

var genericPalette = []string{"#000000", "#FFFFFF", "#808080", "#000080", "#F5F5DC"}

// Season derives the colour season from the verdict and 8-bit lightness
func Season(undertone string, lightness float64) string {
	light := lightness >= LightThreshold
	switch undertone {
	case Warm:
		if light {
			return "Spring"
		}
		return "Autumn"
	case Cool:
		if light {
			return "Summer"
		}
		return "Winter"
	default:
		if light {
			return "Summer"
		}
		return "Autumn"
	}
}

// Palette looks up colours for a season and undertone, falling back to any
// palette of the same season and then to a generic neutral set
func Palette(season, undertone string) []string {
	sub, ok := palettes[season]
	if !ok {
		return clone(genericPalette)
	}
	if p, ok := sub[undertone]; ok {
		return clone(p)
	}
	keys := make([]string, 0, len(sub))
	for k := range sub {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return clone(genericPalette)
	}
	sort.Strings(keys)
	return clone(sub[keys[0]])
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
