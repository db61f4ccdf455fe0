package scanner

// Matcher applies a compiled pattern set to single lines of text.
type Matcher struct {
	categories []Category
}

// NewMatcher wraps compiled categories in a Matcher. The category order
// is preserved and determines the order of reported names.
func NewMatcher(categories []Category) *Matcher {
	return &Matcher{categories: categories}
}

// Match returns the names of every category with at least one expression
// matching anywhere in the line. Matching is an unanchored substring
// search; indentation and trailing content do not matter. Pathological
// backtracking on hostile input is an accepted risk at this layer.
func (m *Matcher) Match(line string) []string {
	var matched []string
	for _, cat := range m.categories {
		for _, re := range cat.Patterns {
			if re.MatchString(line) {
				matched = append(matched, cat.Name)
				break
			}
		}
	}
	return matched
}

// CategoryNames returns the configured category names in match order.
func (m *Matcher) CategoryNames() []string {
	names := make([]string, len(m.categories))
	for i, cat := range m.categories {
		names[i] = cat.Name
	}
	return names
}
