package catalog

import (
	"strings"
	"testing"
)

const sampleCSV = `product_variant_id,product_name,brand_name,l3_category_name,search_term,selling_price,ranking_cohort,ranking_score,asp_boost,pop_boost
pv1,Almond Pack,NutCo,Dry Fruits,almonds,499,premium,10,1,0.2
pv2,Almond Mix,SnackHub,Dry Fruits,almonds,299,value,20,0,0.1
pv3,Almond Box,NutCo,Gifting,almonds,999,premium,30,0,0.3
pv4,Cashew Pack,NutCo,Dry Fruits,cashews,599,premium,25,0.5,0.4
`

func loadSample(t *testing.T) *Table {
	t.Helper()
	table, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return table
}

func TestLoadClassifiesColumns(t *testing.T) {
	table := loadSample(t)

	if table.Len() != 4 {
		t.Fatalf("got %d rows, want 4", table.Len())
	}

	numeric := []string{"selling_price", "ranking_score", "asp_boost", "pop_boost"}
	for _, name := range numeric {
		if !table.IsNumeric(name) {
			t.Errorf("column %q should be numeric", name)
		}
	}

	text := []string{"product_variant_id", "product_name", "brand_name", "l3_category_name", "search_term", "ranking_cohort"}
	for _, name := range text {
		if table.IsNumeric(name) {
			t.Errorf("column %q should not be numeric", name)
		}
	}
}

func TestNumericColumns(t *testing.T) {
	table := loadSample(t)

	cols, err := table.NumericColumns([]string{"ranking_score", "asp_boost"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{10, 20, 30, 25}
	for i, v := range want {
		if cols["ranking_score"][i] != v {
			t.Errorf("ranking_score[%d] = %v, want %v", i, cols["ranking_score"][i], v)
		}
	}

	if _, err := table.NumericColumns([]string{"no_such_column"}); err == nil {
		t.Error("expected error for missing column")
	}
	if _, err := table.NumericColumns([]string{"brand_name"}); err == nil {
		t.Error("expected error for non-numeric column")
	}
}

func TestLoadRejectsRaggedRows(t *testing.T) {
	_, err := Load(strings.NewReader("a,b\n1,2,3\n"))
	if err == nil {
		t.Fatal("expected error for ragged row")
	}
}

func TestLoadEmptyInput(t *testing.T) {
	if _, err := Load(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestDistinct(t *testing.T) {
	table := loadSample(t)

	got := table.Distinct("brand_name")
	want := []string{"NutCo", "SnackHub"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestSelectPreservesOrder(t *testing.T) {
	table := loadSample(t)

	sel := table.Select([]int{2, 0})
	if sel.Len() != 2 {
		t.Fatalf("got %d rows, want 2", sel.Len())
	}
	if sel.Cell("product_variant_id", 0) != "pv3" || sel.Cell("product_variant_id", 1) != "pv1" {
		t.Errorf("selection out of order: %q, %q",
			sel.Cell("product_variant_id", 0), sel.Cell("product_variant_id", 1))
	}
	nums, err := sel.Numeric("ranking_score")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nums[0] != 30 || nums[1] != 10 {
		t.Errorf("numeric selection = %v, want [30 10]", nums)
	}
}

func TestFilter(t *testing.T) {
	table := loadSample(t)

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{
			name:     "search term only",
			filter:   Filter{SearchTerm: "almonds"},
			expected: []string{"pv1", "pv2", "pv3"},
		},
		{
			name:     "brand restriction",
			filter:   Filter{SearchTerm: "almonds", Brands: []string{"NutCo"}},
			expected: []string{"pv1", "pv3"},
		},
		{
			name:     "category restriction",
			filter:   Filter{SearchTerm: "almonds", Categories: []string{"Gifting"}},
			expected: []string{"pv3"},
		},
		{
			name:     "brand and category",
			filter:   Filter{SearchTerm: "almonds", Brands: []string{"SnackHub"}, Categories: []string{"Dry Fruits"}},
			expected: []string{"pv2"},
		},
		{
			name:     "no matches",
			filter:   Filter{SearchTerm: "walnuts"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(table)
			if got.Len() != len(tt.expected) {
				t.Fatalf("got %d rows, want %d", got.Len(), len(tt.expected))
			}
			for i, id := range tt.expected {
				if got.Cell("product_variant_id", i) != id {
					t.Errorf("row %d = %q, want %q", i, got.Cell("product_variant_id", i), id)
				}
			}
		})
	}
}
