// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//Package plant has the wind plant dataset model of the service and the
//in-memory store managing the datasets
package plant

import (
	"time"
)

const (
	//SourceExample indicates that the dataset was created from the bundled example corpus
	SourceExample = "EXAMPLE"
	//SourceUpload indicates that the dataset was created from user uploaded data files
	SourceUpload = "UPLOAD"
)

//Dataset is an immutable bundle of validated category tables.
//It becomes visible to the api only after every table passed the validation
type Dataset struct {
	id        string
	source    string
	createdAt time.Time
	tables    map[Category]*Table
}

//NewDataset builds a dataset out of the given validated tables. The scada
//category is mandatory as no analysis can run without it. The id and the
//creation time are assigned when the dataset is registered with the store
func NewDataset(source string, tables map[Category]*Table) (*Dataset, error) {
	/*
	 * We will check whether any table is given at all
	 * Then we will check the categories of the given tables
	 * Then we will check the mandatory scada table
	 */
	if len(tables) == 0 {
		return nil, &ValidationError{Problems: []string{"no data files given"}}
	}
	for cat, table := range tables {
		if !cat.IsValid() {
			return nil, &ValidationError{Category: cat, Problems: []string{"unsupported data category"}}
		}
		if table == nil || table.Category() != cat {
			return nil, &ValidationError{Category: cat, Problems: []string{"table does not belong to the category"}}
		}
	}
	if _, ok := tables[CategoryScada]; !ok {
		return nil, &ValidationError{Category: CategoryScada, Problems: []string{"the scada data file is required"}}
	}

	copied := make(map[Category]*Table, len(tables))
	for cat, table := range tables {
		copied[cat] = table
	}
	return &Dataset{source: source, tables: copied}, nil
}

//ID returns the id of the dataset assigned at registration
func (d *Dataset) ID() string {
	return d.id
}

//Source returns the source the dataset was created from
func (d *Dataset) Source() string {
	return d.source
}

//CreatedAt returns the time at which the dataset was registered
func (d *Dataset) CreatedAt() time.Time {
	return d.createdAt
}

//Table returns the table of the given category
func (d *Dataset) Table(cat Category) (*Table, bool) {
	t, ok := d.tables[cat]
	return t, ok
}

//Categories returns the categories present in the dataset in their canonical order
func (d *Dataset) Categories() []Category {
	result := []Category{}
	for _, cat := range Categories {
		if _, ok := d.tables[cat]; ok {
			result = append(result, cat)
		}
	}
	return result
}

//MissingCategories returns the categories out of the required ones that the
//dataset doesn't have
func (d *Dataset) MissingCategories(required []Category) []Category {
	missing := []Category{}
	for _, cat := range required {
		if _, ok := d.tables[cat]; !ok {
			missing = append(missing, cat)
		}
	}
	return missing
}

//CategorySummary has the compact description of one category table of a dataset
type CategorySummary struct {
	//Rows is the number of data rows in the table
	Rows int `json:"rows"`
	//Columns has the canonical column names of the table
	Columns []string `json:"columns"`
	//DateRange has the first and the last timestamps of the table.
	//It is omitted for the tables that are not time indexed
	DateRange []string `json:"date_range,omitempty"`
}

//Summary has the compact description of a dataset returned by the apis
type Summary struct {
	//DatasetID is the id of the dataset
	DatasetID string `json:"dataset_id"`
	//CreatedAt is the time at which the dataset was registered
	CreatedAt time.Time `json:"created_at"`
	//Categories maps the categories of the dataset to their table summaries
	Categories map[Category]CategorySummary `json:"categories"`
}

//Summary returns the compact description of the dataset
func (d *Dataset) Summary() Summary {
	s := Summary{
		DatasetID:  d.id,
		CreatedAt:  d.createdAt,
		Categories: map[Category]CategorySummary{},
	}
	for cat, table := range d.tables {
		cs := CategorySummary{Rows: table.Rows(), Columns: table.Columns()}
		if min, max, ok := table.DateRange(); ok {
			cs.DateRange = []string{min.Format(time.RFC3339), max.Format(time.RFC3339)}
		}
		s.Categories[cat] = cs
	}
	return s
}
