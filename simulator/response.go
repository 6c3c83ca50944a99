package simulator

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"github.com/Jeffail/gabs/v2"
)

// Extra columns appended to every result row beyond the catalog's own.
var resultColumns = []string{"score_a", "score_b", "rank_a", "rank_b", "rank_delta"}

// JSON renders the result as a JSON document. The row objects are built
// dynamically because the catalog's column set is data-driven, not a
// fixed struct.
func (r *Result) JSON() *gabs.Container {
	out := gabs.New()
	out.Set(r.ID, "simulation_id")
	out.Set(r.FormulaA, "formulas", "a")
	out.Set(r.FormulaB, "formulas", "b")
	out.Set(r.TopK, "top_k")
	out.Set(r.Table.Len(), "row_count")

	out.Array("rows")
	for _, i := range r.Selected {
		row := gabs.New()
		for _, col := range r.Table.Columns() {
			if r.Table.IsNumeric(col) {
				values, err := r.Table.Numeric(col)
				if err != nil {
					continue
				}
				row.Set(jsonNumber(values[i]), col)
			} else {
				row.Set(r.Table.Cell(col, i), col)
			}
		}
		row.Set(jsonNumber(r.ScoreA[i]), "score_a")
		row.Set(jsonNumber(r.ScoreB[i]), "score_b")
		row.Set(r.RankA[i], "rank_a")
		row.Set(r.RankB[i], "rank_b")
		row.Set(r.Delta[i], "rank_delta")
		out.ArrayAppend(row.Data(), "rows")
	}

	out.Set(r.Summary.TopK, "summary", "top_k")
	out.Set(r.Summary.TopKOverlap, "summary", "top_k_overlap")
	out.Set(r.Summary.AvgRankShift, "summary", "avg_rank_shift")
	out.Set(r.Summary.Improved, "summary", "improved")
	out.Set(r.Summary.Worsened, "summary", "worsened")

	out.Array("distribution")
	for _, bucket := range r.Distribution {
		b := gabs.New()
		b.Set(bucket.Delta, "delta")
		b.Set(bucket.Count, "count")
		out.ArrayAppend(b.Data(), "distribution")
	}

	return out
}

// jsonNumber maps non-finite scores (division by zero produces them) to
// null, since JSON has no Inf/NaN representation.
func jsonNumber(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// CSV renders the selected rows as a downloadable CSV: the catalog's
// columns in original order followed by scores, ranks and delta.
func (r *Result) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(r.Table.Columns())+len(resultColumns))
	header = append(header, r.Table.Columns()...)
	header = append(header, resultColumns...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, i := range r.Selected {
		record := make([]string, 0, len(header))
		for _, col := range r.Table.Columns() {
			record = append(record, r.Table.Cell(col, i))
		}
		record = append(record,
			formatScore(r.ScoreA[i]),
			formatScore(r.ScoreB[i]),
			strconv.Itoa(r.RankA[i]),
			strconv.Itoa(r.RankB[i]),
			strconv.Itoa(r.Delta[i]),
		)
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
