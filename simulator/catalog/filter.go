package catalog

// Filter narrows the catalog to one search term, optionally restricted to
// a set of brands and categories. Empty slices mean no restriction, the
// same semantics as an empty multiselect.
type Filter struct {
	SearchTerm string
	Brands     []string
	Categories []string
}

// Apply returns the rows matching the filter as a new table.
func (f Filter) Apply(t *Table) *Table {
	brands := toSet(f.Brands)
	categories := toSet(f.Categories)

	var keep []int
	for r := 0; r < t.Len(); r++ {
		if t.Cell(ColSearchTerm, r) != f.SearchTerm {
			continue
		}
		if brands != nil {
			if _, ok := brands[t.Cell(ColBrand, r)]; !ok {
				continue
			}
		}
		if categories != nil {
			if _, ok := categories[t.Cell(ColCategory, r)]; !ok {
				continue
			}
		}
		keep = append(keep, r)
	}

	return t.Select(keep)
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
