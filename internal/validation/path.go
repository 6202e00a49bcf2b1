package validation

import "strconv"

// Path is a dot/bracket property path such as "Addresses[2].Country".
type Path string

// Field appends a named segment.
func (p Path) Field(name string) Path {
	if p == "" {
		return Path(name)
	}
	return p + "." + Path(name)
}

// Index appends an index segment.
func (p Path) Index(i int) Path {
	return p + "[" + Path(strconv.Itoa(i)) + "]"
}

func (p Path) String() string { return string(p) }
