package domain

// FacetSettings is the auxiliary facet configuration of a collection: the facetable attributes
// and, per attribute, value → count. The zero value means "no facets".
type FacetSettings struct {
	SourceInstanceID string
	Attributes       []string
	Values           map[string]map[string]int
}

// Empty reports whether no facet attributes are known.
func (f FacetSettings) Empty() bool {
	return len(f.Attributes) == 0
}
