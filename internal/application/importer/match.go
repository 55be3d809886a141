package importer

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Confidence tiers used by the review UI.
const (
	ConfidenceExact  = 100
	ConfidenceHigh   = 80 // ceiling for containment matches
	ConfidenceMedium = 60 // ceiling for word-overlap matches
	ConfidenceFloor  = 30 // scores at or below this are discarded
)

// ClubRef is the reference-data view of a club used for matching.
type ClubRef struct {
	ID   string
	Name string
}

// Match is the outcome of fuzzy-matching an imported club name.
type Match struct {
	ClubID     string
	ClubName   string
	Confidence int
}

// Suggestion is an ephemeral ranked candidate offered to the reviewer when
// resolving an unmatched club name. Never persisted.
type Suggestion struct {
	ClubID     string
	ClubName   string
	Confidence int
	Reason     string
}

// NormalizeClubName lowercases a club name and strips everything but letters
// and digits, so "St. Arnaud Pony Club Inc." and "st arnaud pony club inc"
// compare equal.
func NormalizeClubName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FindBestClubMatch scores the input name against every known club and keeps
// the single best candidate. Scoring tiers, in priority order:
//
//	exact normalized equality  -> 100, short-circuits the scan
//	containment either way     -> length-coverage ratio scaled to 80
//	word overlap               -> shared-word fraction scaled to 60
//
// A greedy heuristic adequate for near-duplicate names, not typo-heavy input.
// PRE: none
// POST: ok is false when no candidate scores above the confidence floor
func FindBestClubMatch(input string, clubs []ClubRef) (Match, bool) {
	norm := NormalizeClubName(input)
	if norm == "" {
		return Match{}, false
	}

	var best Match
	for _, c := range clubs {
		candidate := NormalizeClubName(c.Name)
		if candidate == "" {
			continue
		}
		if candidate == norm {
			return Match{ClubID: c.ID, ClubName: c.Name, Confidence: ConfidenceExact}, true
		}
		score := containmentScore(norm, candidate)
		if s := wordOverlapScore(input, c.Name); s > score {
			score = s
		}
		if score > best.Confidence {
			best = Match{ClubID: c.ID, ClubName: c.Name, Confidence: score}
		}
	}

	if best.Confidence <= ConfidenceFloor {
		return Match{}, false
	}
	return best, true
}

// containmentScore scores substring containment in either direction by how
// much of the longer name the shorter one covers, scaled to the high tier.
func containmentScore(a, b string) int {
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return 0
	}
	shorter, longer := len(a), len(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	return int(float64(shorter) / float64(longer) * ConfidenceHigh)
}

// wordOverlapScore scores the fraction of distinct words the two names share,
// scaled to the medium tier.
func wordOverlapScore(a, b string) int {
	wordsA := nameWords(a)
	wordsB := nameWords(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}
	setA := make(map[string]bool, len(wordsA))
	for _, w := range wordsA {
		setA[w] = true
	}
	shared := 0
	seen := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		if setA[w] && !seen[w] {
			shared++
			seen[w] = true
		}
	}
	longest := len(wordsA)
	if len(wordsB) > longest {
		longest = len(wordsB)
	}
	return int(float64(shared) / float64(longest) * ConfidenceMedium)
}

func nameWords(name string) []string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
	var words []string
	for _, f := range fields {
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}

// SuggestClubs ranks candidate clubs for the reviewer resolving an unmatched
// name. Tier scores are merged with Levenshtein-ranked fuzzy hits so that
// typo-heavy input still surfaces plausible candidates the tier heuristic
// misses.
// PRE: limit > 0
// POST: results sorted by confidence descending, at most limit entries
func SuggestClubs(input string, clubs []ClubRef, limit int) []Suggestion {
	if strings.TrimSpace(input) == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		club       ClubRef
		confidence int
		reason     string
	}
	byID := make(map[string]*scored, len(clubs))

	norm := NormalizeClubName(input)
	for i := range clubs {
		c := clubs[i]
		candidate := NormalizeClubName(c.Name)
		var confidence int
		var reason string
		switch {
		case candidate != "" && candidate == norm:
			confidence, reason = ConfidenceExact, "exact name match"
		default:
			if s := containmentScore(norm, candidate); s > confidence {
				confidence, reason = s, "name containment"
			}
			if s := wordOverlapScore(input, c.Name); s > confidence {
				confidence, reason = s, "shared words"
			}
		}
		if confidence > 0 {
			byID[c.ID] = &scored{club: c, confidence: confidence, reason: reason}
		}
	}

	names := make([]string, len(clubs))
	for i, c := range clubs {
		names[i] = c.Name
	}
	for _, rank := range fuzzy.RankFindNormalizedFold(input, names) {
		c := clubs[rank.OriginalIndex]
		// Closer edit distance scores higher, staying under the medium tier.
		confidence := ConfidenceMedium - rank.Distance*5
		if confidence <= 0 {
			continue
		}
		if existing, ok := byID[c.ID]; ok {
			if confidence > existing.confidence {
				existing.confidence = confidence
				existing.reason = "fuzzy similarity"
			}
		} else {
			byID[c.ID] = &scored{club: c, confidence: confidence, reason: "fuzzy similarity"}
		}
	}

	var out []Suggestion
	for _, s := range byID {
		if s.confidence <= ConfidenceFloor {
			continue
		}
		out = append(out, Suggestion{
			ClubID:     s.club.ID,
			ClubName:   s.club.Name,
			Confidence: s.confidence,
			Reason:     s.reason,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].ClubName < out[j].ClubName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
