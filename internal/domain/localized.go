package domain

import "sort"

// LocalizedItem is one language version of a text, optionally tagged with a type
// (Name, AlternateName, Summary, Description, ...).
type LocalizedItem struct {
	Language string `json:"language"`
	Type     string `json:"type,omitempty"`
	Value    string `json:"value"`
}

// LocalizedList is a collection of language versions. Duplicate language+type
// pairs are allowed at this level.
type LocalizedList []LocalizedItem

// Languages returns the distinct languages of the list in sorted order.
func (l LocalizedList) Languages() []string {
	seen := make(map[string]struct{}, len(l))
	out := make([]string, 0, len(l))
	for _, it := range l {
		if it.Language == "" {
			continue
		}
		if _, ok := seen[it.Language]; ok {
			continue
		}
		seen[it.Language] = struct{}{}
		out = append(out, it.Language)
	}
	sort.Strings(out)
	return out
}

func (l LocalizedList) HasLanguage(lang string) bool {
	for _, it := range l {
		if it.Language == lang {
			return true
		}
	}
	return false
}

func (l LocalizedList) HasTypeAndLanguage(typ, lang string) bool {
	for _, it := range l {
		if it.Type == typ && it.Language == lang {
			return true
		}
	}
	return false
}

// Value returns the first value with the given type and language.
func (l LocalizedList) Value(typ, lang string) (string, bool) {
	for _, it := range l {
		if it.Type == typ && it.Language == lang {
			return it.Value, true
		}
	}
	return "", false
}

// OfType returns the items tagged with typ.
func (l LocalizedList) OfType(typ string) LocalizedList {
	var out LocalizedList
	for _, it := range l {
		if it.Type == typ {
			out = append(out, it)
		}
	}
	return out
}

// UnionLanguages merges language codes from several sources into one sorted,
// de-duplicated slice. Empty codes are skipped.
func UnionLanguages(sets ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, set := range sets {
		for _, lang := range set {
			if lang == "" {
				continue
			}
			if _, ok := seen[lang]; ok {
				continue
			}
			seen[lang] = struct{}{}
			out = append(out, lang)
		}
	}
	sort.Strings(out)
	return out
}
