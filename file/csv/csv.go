// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//Package csv has the reading and lint utilities for the csv data files
package csv

import (
	"encoding/csv"
	"errors"
	"io"

	"github.com/Clever/csvlint"
)

//CSV holds the content of a read csv data file
type CSV struct {
	//Name is the name of the data file
	Name string
	//Header has the raw column headers of the file
	Header []string
	//Records has the data rows of the file
	Records [][]string
}

//Validate runs the lint gauntlet over the csv content and returns the
//problems found in it
func Validate(r io.Reader) ([]error, error) {
	/*
	 * We will run the linter over the content
	 * Then we will collect the problems reported by it
	 */
	invalids, _, err := csvlint.Validate(r, rune(','), true)
	if err != nil {
		return nil, err
	}
	if len(invalids) == 0 {
		return nil, nil
	}
	errorResults := []error{}
	for _, v := range invalids {
		errorResults = append(errorResults, v)
	}
	return errorResults, nil
}

//Read parses the csv content into its header and records
func Read(name string, r io.Reader) (*CSV, error) {
	/*
	 * We will read the column headers first
	 * Then we will read the data rows one by one
	 */
	reader := csv.NewReader(r)

	//reading the column headers
	header, err := reader.Read()
	//even if the error was EOF or anything else, we will report it as error since
	//we couldn't read the headers
	if err != nil && err != io.EOF {
		return nil, err
	}
	if err == io.EOF {
		return nil, errors.New("EOF reached before able to read the columns in the file")
	}

	//reading the data rows
	result := &CSV{Name: name, Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, record)
	}
	return result, nil
}
