// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package plant

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

//maxProblems caps the number of validation problems reported for a single table
const maxProblems = 20

//supportedTimeFormats has the timestamp layouts accepted in the time column
var supportedTimeFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"02/01/2006 15:04",
	"2006-01-02",
}

//Table is an immutable column typed data table belonging to a dataset category.
//The accessors return the underlying storage and the callers must not modify it
type Table struct {
	category Category
	columns  []string
	rows     int
	times    []time.Time
	numbers  map[string][]float64
	labels   map[string][]string
}

//NewTable builds the validated table of the given category out of the raw csv
//header and records. The raw headers are mapped to the canonical column names,
//the cells are parsed into their column types and the rows are sorted by time.
//A *ValidationError is returned when the data doesn't satisfy the category schema
func NewTable(cat Category, header []string, records [][]string) (*Table, error) {
	/*
	 * We will resolve the schema of the category
	 * Then we will canonicalize the column headers
	 * Then we will check the required columns and the row count
	 * Then we will parse the cells into their column types
	 * Finally we will sort the rows by time
	 */
	schema, ok := Schemas[cat]
	if !ok {
		return nil, &ValidationError{Category: cat, Problems: []string{"unsupported data category"}}
	}

	//canonicalizing the column headers
	problems := []string{}
	cols := make([]string, len(header))
	seen := map[string]int{}
	for i, h := range header {
		c := CanonicalColumn(h)
		if j, dup := seen[c]; dup {
			problems = addProblem(problems, fmt.Sprintf("columns %q and %q both map to %q", header[j], h, c))
		}
		seen[c] = i
		cols[i] = c
	}

	//checking the required columns and the row count
	for _, req := range schema.Required {
		if _, ok := seen[req]; !ok {
			problems = addProblem(problems, fmt.Sprintf("required column %q is missing", req))
		}
	}
	if len(records) == 0 {
		problems = addProblem(problems, "no data rows")
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Category: cat, Problems: problems}
	}

	//parsing the cells into their column types
	n := len(records)
	t := &Table{
		category: cat,
		columns:  cols,
		rows:     n,
		numbers:  map[string][]float64{},
		labels:   map[string][]string{},
	}
	isLabel := map[string]bool{}
	for _, l := range schema.Labels {
		isLabel[l] = true
	}
	for ci, c := range cols {
		switch {
		case c == ColTime && schema.TimeIndexed:
			t.times = make([]time.Time, n)
			for ri, rec := range records {
				v := cell(rec, ci)
				ts, err := parseTime(v)
				if err != nil {
					problems = addProblem(problems, fmt.Sprintf("unparseable timestamp %q at line %d", v, ri+2))
					continue
				}
				t.times[ri] = ts
			}
		case isLabel[c]:
			vals := make([]string, n)
			for ri, rec := range records {
				v := strings.TrimSpace(cell(rec, ci))
				if len(v) == 0 {
					problems = addProblem(problems, fmt.Sprintf("empty %s at line %d", c, ri+2))
					continue
				}
				vals[ri] = v
			}
			t.labels[c] = vals
		default:
			vals := make([]float64, n)
			for ri, rec := range records {
				f, err := strconv.ParseFloat(strings.TrimSpace(cell(rec, ci)), 64)
				if err != nil {
					f = math.NaN()
				}
				vals[ri] = f
			}
			t.numbers[c] = vals
		}
	}

	//required numeric columns must carry at least one value
	for _, req := range schema.Required {
		vals, ok := t.numbers[req]
		if !ok {
			continue
		}
		if allNaN(vals) {
			problems = addProblem(problems, fmt.Sprintf("column %q has no numeric values", req))
		}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Category: cat, Problems: problems}
	}

	//sorting the rows by time
	if schema.TimeIndexed {
		t.sortByTime()
	}
	return t, nil
}

//cell returns the value at the given column index guarding against short rows
func cell(rec []string, ci int) string {
	if ci >= len(rec) {
		return ""
	}
	return rec[ci]
}

func addProblem(problems []string, p string) []string {
	if len(problems) >= maxProblems {
		return problems
	}
	if len(problems) == maxProblems-1 {
		return append(problems, "further problems truncated")
	}
	return append(problems, p)
}

func parseTime(v string) (time.Time, error) {
	tv := strings.TrimSpace(v)
	for _, f := range supportedTimeFormats {
		ts, err := time.Parse(f, tv)
		if err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", v)
}

func allNaN(vals []float64) bool {
	for _, v := range vals {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

//sortByTime orders the rows of the table by their timestamps keeping the
//relative order of the rows sharing a timestamp
func (t *Table) sortByTime() {
	perm := make([]int, t.rows)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return t.times[perm[i]].Before(t.times[perm[j]])
	})

	times := make([]time.Time, t.rows)
	for i, p := range perm {
		times[i] = t.times[p]
	}
	t.times = times

	for c, vals := range t.numbers {
		next := make([]float64, t.rows)
		for i, p := range perm {
			next[i] = vals[p]
		}
		t.numbers[c] = next
	}
	for c, vals := range t.labels {
		next := make([]string, t.rows)
		for i, p := range perm {
			next[i] = vals[p]
		}
		t.labels[c] = next
	}
}

//Category returns the data category the table belongs to
func (t *Table) Category() Category {
	return t.category
}

//Rows returns the number of data rows in the table
func (t *Table) Rows() int {
	return t.rows
}

//Columns returns the canonical column names in their file order
func (t *Table) Columns() []string {
	return t.columns
}

//HasColumn returns true when the table carries the given canonical column
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

//Times returns the parsed timestamps of the table. It is nil for the tables
//of the categories that are not time indexed
func (t *Table) Times() []time.Time {
	return t.times
}

//Numbers returns the values of the given numeric column with NaN marking the
//cells that couldn't be parsed. It is nil when the column is absent or not numeric
func (t *Table) Numbers(name string) []float64 {
	return t.numbers[name]
}

//Labels returns the values of the given identifier column.
//It is nil when the column is absent or not an identifier column
func (t *Table) Labels(name string) []string {
	return t.labels[name]
}

//DateRange returns the first and the last timestamps of the table
func (t *Table) DateRange() (time.Time, time.Time, bool) {
	if len(t.times) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return t.times[0], t.times[len(t.times)-1], true
}
