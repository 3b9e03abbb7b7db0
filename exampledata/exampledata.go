// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//Package exampledata loads the La Haute Borne demonstration dataset bundled with the binary
package exampledata

import (
	"compress/gzip"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/swaralipi04/openoa-Assignment/file"
	"github.com/swaralipi04/openoa-Assignment/file/csv"
	"github.com/swaralipi04/openoa-Assignment/plant"
)

//corpus has the gzipped csv exports of the example wind plant
//
//go:embed corpus/*.csv.gz
var corpus embed.FS

//Following constants have the corpus file paths
const (
	scadaFile      = "corpus/la-haute-borne-scada.csv.gz"
	plantFile      = "corpus/la-haute-borne-plant.csv.gz"
	assetFile      = "corpus/la-haute-borne-asset.csv.gz"
	reanalysisFile = "corpus/era5.csv.gz"
)

//UnavailableError is the error reported when the bundled example data can't be loaded
type UnavailableError struct {
	//Path is the corpus file that failed to load
	Path string
	//Err is the underlying error
	Err error
}

//Error returns the string representation of the error
func (u UnavailableError) Error() string {
	return fmt.Sprintf("example data unavailable: %s: %v", u.Path, u.Err)
}

//Unwrap returns the underlying error
func (u UnavailableError) Unwrap() error {
	return u.Err
}

//Loader loads the example dataset out of a corpus file system
type Loader struct {
	fsys fs.FS
}

//NewLoader returns a loader over the corpus bundled with the binary
func NewLoader() *Loader {
	return &Loader{fsys: corpus}
}

//NewLoaderFS returns a loader over the given file system in place of the bundled corpus
func NewLoaderFS(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

//Load parses the corpus into a fresh example dataset.
//The returned dataset isn't registered with any store yet
func (l *Loader) Load() (*plant.Dataset, error) {
	/*
	 * We will parse the turbine scada export
	 * Then split the plant export into the meter and the curtailment tables
	 * Then parse the asset metadata and the reanalysis exports
	 * Finally we will assemble the dataset out of the parsed tables
	 */
	tables := map[plant.Category]*plant.Table{}

	scada, err := l.parse(plant.CategoryScada, scadaFile)
	if err != nil {
		return nil, err
	}
	tables[plant.CategoryScada] = scada

	meter, curtail, err := l.parsePlantData()
	if err != nil {
		return nil, err
	}
	tables[plant.CategoryMeter] = meter
	tables[plant.CategoryCurtail] = curtail

	asset, err := l.parse(plant.CategoryAsset, assetFile)
	if err != nil {
		return nil, err
	}
	tables[plant.CategoryAsset] = asset

	rean, err := l.parse(plant.CategoryReanalysis, reanalysisFile)
	if err != nil {
		return nil, err
	}
	tables[plant.CategoryReanalysis] = rean

	d, err := plant.NewDataset(plant.SourceExample, tables)
	if err != nil {
		//error while assembling the dataset out of the corpus tables
		return nil, UnavailableError{Path: "corpus", Err: err}
	}
	return d, nil
}

//parse reads one gzipped corpus file into the table of the given category
func (l *Loader) parse(cat plant.Category, path string) (*plant.Table, error) {
	r, err := l.open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	t, err := file.Parse(cat, strings.TrimSuffix(path, ".gz"), r)
	if err != nil {
		//error while parsing the corpus file
		return nil, UnavailableError{Path: path, Err: err}
	}
	return t, nil
}

//parsePlantData splits the plant export into the meter and the curtailment tables.
//The export carries the metered energy and the loss estimates in a single file
func (l *Loader) parsePlantData() (*plant.Table, *plant.Table, error) {
	r, err := l.open(plantFile)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()
	c, err := csv.Read(strings.TrimSuffix(plantFile, ".gz"), r)
	if err != nil {
		//error while reading the plant export
		return nil, nil, UnavailableError{Path: plantFile, Err: err}
	}
	meter, err := project(plant.CategoryMeter, c, []string{plant.ColTime, plant.ColEnergyKWh})
	if err != nil {
		return nil, nil, err
	}
	curtail, err := project(plant.CategoryCurtail, c, []string{plant.ColTime, plant.ColCurtailmentKWh, plant.ColAvailabilityKWh})
	if err != nil {
		return nil, nil, err
	}
	return meter, curtail, nil
}

//project builds the table of a category out of a subset of the csv columns
func project(cat plant.Category, c *csv.CSV, cols []string) (*plant.Table, error) {
	/*
	 * We will locate the wanted columns in the csv header
	 * Then copy the selected cells row by row
	 * Finally we will parse the projection as the table of the category
	 */
	idx := make([]int, 0, len(cols))
	header := make([]string, 0, len(cols))
	for _, want := range cols {
		found := -1
		for i, h := range c.Header {
			if plant.CanonicalColumn(h) == want {
				found = i
				break
			}
		}
		if found < 0 {
			//error while locating the column in the plant export
			return nil, UnavailableError{Path: c.Name, Err: fmt.Errorf("column %s not found", want)}
		}
		idx = append(idx, found)
		header = append(header, c.Header[found])
	}
	records := make([][]string, 0, len(c.Records))
	for _, rec := range c.Records {
		row := make([]string, len(idx))
		for i, j := range idx {
			if j < len(rec) {
				row[i] = rec[j]
			}
		}
		records = append(records, row)
	}
	t, err := plant.NewTable(cat, header, records)
	if err != nil {
		//error while building the projected table
		return nil, UnavailableError{Path: c.Name, Err: err}
	}
	return t, nil
}

//open opens a corpus file and wraps it with a gzip reader
func (l *Loader) open(path string) (io.ReadCloser, error) {
	f, err := l.fsys.Open(path)
	if err != nil {
		//error while opening the corpus file
		return nil, UnavailableError{Path: path, Err: err}
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		//error while opening the gzip stream of the corpus file
		f.Close()
		return nil, UnavailableError{Path: path, Err: err}
	}
	return &corpusReader{gz: gz, f: f}, nil
}

//corpusReader reads the decompressed corpus stream and closes both the layers
type corpusReader struct {
	gz *gzip.Reader
	f  fs.File
}

//Read reads from the decompressed stream
func (c *corpusReader) Read(p []byte) (int, error) {
	return c.gz.Read(p)
}

//Close closes the gzip reader followed by the underlying file
func (c *corpusReader) Close() error {
	c.gz.Close()
	return c.f.Close()
}
