package domain

// Category wildcards offered by the catalog and gallery filters.
const (
	AllMaterials = "All Products"
	AllProjects  = "All Projects"
)

// MaterialFilter selects catalog materials by category and name.
type MaterialFilter struct {
	Category string
	Query    string
}

// Match reports whether m passes both the category and the search filter.
func (f MaterialFilter) Match(m Material) bool {
	matchesCategory := f.Category == "" || f.Category == AllMaterials || m.Category == f.Category
	return matchesCategory && ContainsFold(m.Name, f.Query)
}

// ProjectFilter selects gallery projects by category and title or creator.
type ProjectFilter struct {
	Category string
	Query    string
}

// Match reports whether p passes both the category and the search filter.
func (f ProjectFilter) Match(p Project) bool {
	matchesCategory := f.Category == "" || f.Category == AllProjects || p.Category == f.Category
	matchesSearch := ContainsFold(p.Title, f.Query) || ContainsFold(p.CreatorName, f.Query)
	return matchesCategory && matchesSearch
}
