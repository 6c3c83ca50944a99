package simulator

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"ranksim/simulator/catalog"
	"ranksim/simulator/formula"
	"ranksim/simulator/rank"
)

// TableSource supplies the catalog table. *catalog.Store implements it;
// tests substitute fixed tables.
type TableSource interface {
	Table() (*catalog.Table, error)
}

// Simulator runs ranking comparisons: it evaluates two formulas over the
// filtered catalog and reports how result order changes between them.
type Simulator struct {
	l      *slog.Logger
	source TableSource
	cfg    *Config
}

func NewSimulator(cfg *Config, source TableSource, l *slog.Logger) *Simulator {
	return &Simulator{
		l:      l,
		source: source,
		cfg:    cfg,
	}
}

// Request is one simulation request. Empty formulas fall back to the
// configured defaults; a zero TopK falls back to the configured default
// and out-of-range values are clamped to the configured bounds.
type Request struct {
	SearchTerm string   `json:"search_term" binding:"required"`
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
	TopK       int      `json:"top_k"`
	FormulaA   string   `json:"formula_a"`
	FormulaB   string   `json:"formula_b"`
}

// Result carries everything the response layer renders. Scores are the
// clamped per-row outputs of each formula over the filtered table; ranks
// and deltas cover the full filtered table, while Selected holds the
// indices of the top-K union rows, ordered by rank under formula A.
type Result struct {
	ID       string
	FormulaA string
	FormulaB string
	TopK     int

	Table          *catalog.Table
	ScoreA, ScoreB []float64
	RankA, RankB   []int
	Delta          []int
	Selected       []int

	Distribution []rank.Bucket
	Summary      rank.Summary
}

// Run executes one simulation. Any failure aborts the whole request; a
// formula error is the analyst's to fix and is never retried.
func (s *Simulator) Run(req Request) (*Result, error) {
	table, err := s.source.Table()
	if err != nil {
		return nil, newCatalogError(err)
	}

	filtered := catalog.Filter{
		SearchTerm: req.SearchTerm,
		Brands:     req.Brands,
		Categories: req.Categories,
	}.Apply(table)

	if filtered.Len() == 0 {
		return nil, &SimulationError{
			Code:    CodeEmptySelection,
			Message: fmt.Sprintf("no rows match search term %q with the given filters", req.SearchTerm),
		}
	}

	bindings, err := s.bind(filtered)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ID:       uuid.New().String(),
		FormulaA: s.formulaOrDefault(req.FormulaA, s.cfg.Formulas.DefaultA),
		FormulaB: s.formulaOrDefault(req.FormulaB, s.cfg.Formulas.DefaultB),
		TopK:     s.normalizeTopK(req.TopK),
		Table:    filtered,
	}

	result.ScoreA, err = s.score("a", result.FormulaA, bindings)
	if err != nil {
		return nil, err
	}
	result.ScoreB, err = s.score("b", result.FormulaB, bindings)
	if err != nil {
		return nil, err
	}

	result.RankA = rank.DenseRank(result.ScoreA)
	result.RankB = rank.DenseRank(result.ScoreB)
	result.Delta = rank.Delta(result.RankA, result.RankB)
	result.Distribution = rank.Distribution(result.Delta)
	result.Summary = rank.Summarize(result.RankA, result.RankB, result.Delta, result.TopK)
	result.Selected = topKUnion(result.RankA, result.RankB, result.TopK)

	s.l.Info("simulation complete",
		"simulation", result.ID,
		"search_term", req.SearchTerm,
		"rows", filtered.Len(),
		"selected", len(result.Selected),
		"top_k", result.TopK)

	return result, nil
}

// bind extracts the whitelisted numeric columns from the filtered table.
// A whitelist entry missing from the catalog is a configuration/data
// problem, not a formula problem.
func (s *Simulator) bind(t *catalog.Table) (*formula.Bindings, error) {
	columns, err := t.NumericColumns(s.cfg.Formulas.Variables)
	if err != nil {
		return nil, newCatalogError(fmt.Errorf("binding whitelisted columns: %w", err))
	}

	bindings := formula.NewBindings(t.Len())
	for name, values := range columns {
		if err := bindings.Bind(name, values); err != nil {
			return nil, newCatalogError(err)
		}
	}
	return bindings, nil
}

// score parses, evaluates and clamps one formula. Clamping to zero is the
// documented post-processing step applied to every formula before ranking.
func (s *Simulator) score(which, text string, b *formula.Bindings) ([]float64, error) {
	scores, err := formula.Eval(text, b)
	if err != nil {
		s.l.Warn("formula evaluation failed",
			"formula", which,
			"text", text,
			"error", err)
		return nil, newFormulaError(which, err)
	}
	return rank.ClampNonNegative(scores), nil
}

func (s *Simulator) formulaOrDefault(text, fallback string) string {
	if text == "" {
		return fallback
	}
	return text
}

func (s *Simulator) normalizeTopK(k int) int {
	if k == 0 {
		return s.cfg.TopK.Default
	}
	if k < s.cfg.TopK.Min {
		return s.cfg.TopK.Min
	}
	if k > s.cfg.TopK.Max {
		return s.cfg.TopK.Max
	}
	return k
}

// topKUnion selects rows ranked in the top K by either formula, ordered
// by their rank under formula A.
func topKUnion(rankA, rankB []int, topK int) []int {
	var selected []int
	for i := range rankA {
		if rankA[i] <= topK || rankB[i] <= topK {
			selected = append(selected, i)
		}
	}
	sort.Slice(selected, func(a, b int) bool {
		return rankA[selected[a]] < rankA[selected[b]]
	})
	return selected
}
