// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package plant

import (
	"fmt"
	"strings"
)

//ValidationError indicates that the given data failed the validation gauntlet.
//A dataset is never created out of data that raised a validation error
type ValidationError struct {
	//Category is the data category that failed the validation
	Category Category
	//Problems has the individual validation failures found in the data
	Problems []string
}

//Error returns the validation failure description with the problems found
func (v *ValidationError) Error() string {
	if len(v.Category) == 0 {
		return fmt.Sprintf("validation failed: %s", strings.Join(v.Problems, "; "))
	}
	return fmt.Sprintf("validation failed for the %s data: %s", v.Category, strings.Join(v.Problems, "; "))
}

//NotFoundError indicates that no dataset exists against the given id
type NotFoundError struct {
	//ID is the dataset id that couldn't be found
	ID string
}

//Error returns the not found description with the dataset id
func (n *NotFoundError) Error() string {
	return fmt.Sprintf("dataset '%s' not found", n.ID)
}
