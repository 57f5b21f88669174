package learned

import (
	"sort"
)

// Categorical columns, in feature order
var Columns = []string{"brand", "category", "material", "retailer", "season"}

// Encoder maps categorical values to their index in a sorted vocabulary.
// Values outside the vocabulary encode to 0.
type Encoder struct {
	Vocab map[string][]string `json:"vocab"`
}

// FitEncoder learns one sorted vocabulary per column
func FitEncoder(rows []map[string]string) *Encoder {
	enc := &Encoder{Vocab: make(map[string][]string, len(Columns))}
	for _, col := range Columns {
		seen := map[string]struct{}{}
		for _, row := range rows {
			seen[row[col]] = struct{}{}
		}
		vocab := make([]string, 0, len(seen))
		for v := range seen {
			vocab = append(vocab, v)
		}
		sort.Strings(vocab)
		enc.Vocab[col] = vocab
	}
	return enc
}

// Encode returns the vocabulary index of value in column, or 0 when unseen
func (e *Encoder) Encode(column, value string) int {
	vocab := e.Vocab[column]
	i := sort.SearchStrings(vocab, value)
	if i < len(vocab) && vocab[i] == value {
		return i
	}
	return 0
}
