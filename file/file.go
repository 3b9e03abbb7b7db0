// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//Package file has the utilities required for resolving the uploaded data
//files and ingesting them into validated category tables.
//There are sub directories which has the implementation for each file type
//supported by the system
package file

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/swaralipi04/openoa-Assignment/file/csv"
	"github.com/swaralipi04/openoa-Assignment/plant"
)

//Type denotes the type of the file
type Type int

//Following constants has the list of supported file types
const (
	//UNRESOLVED is the type that is not resolved or not supported
	UNRESOLVED Type = 0
	//CSV is the comma separated files ~ files ending with the extension .csv
	CSV Type = 1
)

//Resolve returns the type of a data file from its name
func Resolve(filename string) Type {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return CSV
	}
	return UNRESOLVED
}

//Parse ingests the given data file content as the validated table of the
//given category. Every failure along the gauntlet comes back as a
//*plant.ValidationError so that a dataset is never built out of bad data
func Parse(cat plant.Category, filename string, r io.Reader) (*plant.Table, error) {
	/*
	 * We will resolve the file type from its name
	 * Then we will buffer the content for the lint pass and the read pass
	 * Then we will run the lint gauntlet
	 * Then we will read the csv content
	 * Finally we will build the validated table out of it
	 */
	if Resolve(filename) != CSV {
		return nil, &plant.ValidationError{Category: cat, Problems: []string{fmt.Sprintf("unidentified file format %q", filename)}}
	}

	//buffering the content since it is read twice
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, &plant.ValidationError{Category: cat, Problems: []string{fmt.Sprintf("error while reading %q: %v", filename, err)}}
	}

	//running the lint gauntlet
	lintErrs, err := csv.Validate(bytes.NewReader(content))
	if err != nil {
		return nil, &plant.ValidationError{Category: cat, Problems: []string{fmt.Sprintf("error while linting %q: %v", filename, err)}}
	}
	if len(lintErrs) > 0 {
		problems := make([]string, 0, len(lintErrs))
		for _, v := range lintErrs {
			problems = append(problems, v.Error())
		}
		return nil, &plant.ValidationError{Category: cat, Problems: problems}
	}

	//reading the csv content
	c, err := csv.Read(filename, bytes.NewReader(content))
	if err != nil {
		return nil, &plant.ValidationError{Category: cat, Problems: []string{err.Error()}}
	}

	//building the validated table
	return plant.NewTable(cat, c.Header, c.Records)
}
