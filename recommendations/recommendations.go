package recommendations

import (
	"errors"
	"sort"
	"strings"
)

// ErrUnknownBodyType is returned for a gender/body type pair with no entry
var ErrUnknownBodyType = errors.New("unknown gender or body type")

// Recommendation is the styling advice for one body type
type Recommendation struct {
	BodyType    string   `json:"body_type"`
	Description string   `json:"description"`
	BestStyles  []string `json:"best_styles"`
	Avoid       []string `json:"avoid"`
	Tips        []string `json:"tips"`
}

var catalog = map[string]map[string]Recommendation{
	"female": {
		"hourglass": {
			Description: "Balanced bust and hips with a well-defined waist",
			BestStyles:  []string{"Wrap dresses", "Belted kurtas", "High-waisted jeans", "Pencil skirts", "Fitted blazers"},
			Avoid:       []string{"Boxy tops", "Shapeless tunics", "Drop-waist dresses"},
			Tips:        []string{"Highlight the waist", "Choose fabrics that drape", "Keep silhouettes tailored"},
		},
		"pear": {
			Description: "Hips wider than the shoulders",
			BestStyles:  []string{"A-line skirts", "Boat-neck tops", "Anarkalis", "Bootcut jeans", "Structured shoulders"},
			Avoid:       []string{"Skinny jeans with short tops", "Hip pockets", "Tapered trousers"},
			Tips:        []string{"Draw attention upward", "Use darker shades below the waist", "Add volume at the shoulders"},
		},
		"apple": {
			Description: "Fuller midsection with slimmer legs",
			BestStyles:  []string{"Empire-waist dresses", "V-neck tops", "Straight-cut kurtas", "Wide-leg trousers", "Open jackets"},
			Avoid:       []string{"Tight waistbands", "Cropped tops", "Clingy fabrics"},
			Tips:        []string{"Create a vertical line", "Show off the legs", "Choose flowing layers"},
		},
		"rectangle": {
			Description: "Bust, waist and hips of similar width",
			BestStyles:  []string{"Peplum tops", "Ruffled blouses", "Belted dresses", "Flared skirts", "Layered outfits"},
			Avoid:       []string{"Straight shift dresses", "Oversized boxy fits"},
			Tips:        []string{"Create curves with belts", "Mix textures", "Use layering for shape"},
		},
		"inverted_triangle": {
			Description: "Shoulders broader than the hips",
			BestStyles:  []string{"V-necks", "Palazzo pants", "A-line skirts", "Flared jeans", "Simple raglan sleeves"},
			Avoid:       []string{"Shoulder pads", "Puff sleeves", "Boat necks"},
			Tips:        []string{"Add volume to the lower body", "Keep tops simple", "Choose bold bottoms"},
		},
	},
	"male": {
		"rectangle": {
			Description: "Shoulders, waist and hips of similar width",
			BestStyles:  []string{"Layered outfits", "Textured shirts", "Structured blazers", "Slim-fit chinos", "Crew-neck tees"},
			Avoid:       []string{"Baggy clothing", "Very tight fits"},
			Tips:        []string{"Add structure at the shoulders", "Layer to build dimension", "Use horizontal stripes on top"},
		},
		"triangle": {
			Description: "Waist and hips broader than the shoulders",
			BestStyles:  []string{"Structured jackets", "Horizontal stripes on top", "Straight-leg trousers", "Nehru jackets"},
			Avoid:       []string{"Skinny jeans", "Tight tops", "Low-rise trousers"},
			Tips:        []string{"Broaden the shoulders", "Keep bottoms dark", "Choose patterned tops"},
		},
		"inverted_triangle": {
			Description: "Broad shoulders with a narrow waist",
			BestStyles:  []string{"V-neck tees", "Straight-leg jeans", "Slim-fit shirts", "Bandhgala jackets"},
			Avoid:       []string{"Shoulder padding", "Very skinny trousers"},
			Tips:        []string{"Balance with fuller trousers", "Keep tops simple", "Use lighter colours below"},
		},
		"oval": {
			Description: "Fuller midsection",
			BestStyles:  []string{"Dark solid shirts", "Vertical stripes", "Single-breasted blazers", "Straight-cut kurtas"},
			Avoid:       []string{"Tight shirts", "Horizontal stripes", "Low-rise jeans"},
			Tips:        []string{"Create vertical lines", "Choose monochrome outfits", "Wear properly fitted trousers"},
		},
		"trapezoid": {
			Description: "Broad shoulders and chest with a slightly narrower waist",
			BestStyles:  []string{"Fitted shirts", "Polo t-shirts", "Slim chinos", "Tailored suits"},
			Avoid:       []string{"Oversized clothing", "Heavy layering"},
			Tips:        []string{"Most styles work", "Show off the natural shape", "Keep fits tailored"},
		},
	},
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// Lookup returns the styling block for a gender and body type. Keys are
// matched case-insensitively and treat hyphens and spaces as underscores.
func Lookup(gender, bodyType string) (Recommendation, error) {
	byType, ok := catalog[normalize(gender)]
	if !ok {
		return Recommendation{}, ErrUnknownBodyType
	}
	key := normalize(bodyType)
	rec, ok := byType[key]
	if !ok {
		return Recommendation{}, ErrUnknownBodyType
	}
	rec.BodyType = key
	return rec, nil
}

// BodyTypes lists the known body types for a gender, sorted
func BodyTypes(gender string) []string {
	byType := catalog[normalize(gender)]
	types := make([]string, 0, len(byType))
	for k := range byType {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}
