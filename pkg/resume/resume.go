package resume

import "reflect"

// Resume is a whole-document snapshot. Snapshots are always complete copies,
// never diffs, so two snapshots can be compared structurally.
type Resume struct {
	Name       string       `json:"name"`
	Role       string       `json:"role"`
	PhoneNo    string       `json:"phoneno"`
	Email      string       `json:"email"`
	Location   string       `json:"location"`
	LinkedIn   string       `json:"linkedin"`
	GitHub     string       `json:"github"`
	Summary    string       `json:"summary"`
	Experience []Experience `json:"experience"`
	Skills     []string     `json:"skills"`
	Education  []Education  `json:"education"`
}

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	From        string `json:"from"`
	To          string `json:"to"`
	Description string `json:"description"`
}

type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Equal reports structural equality between two snapshots.
func Equal(a, b *Resume) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// IsEmpty reports whether the document carries no content at all.
func (r *Resume) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Name == "" && r.Summary == "" &&
		len(r.Experience) == 0 && len(r.Skills) == 0 && len(r.Education) == 0
}
