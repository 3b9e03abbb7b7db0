// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package analysis

import (
	"fmt"
	"strings"

	"github.com/swaralipi04/openoa-Assignment/plant"
)

//UnknownMethodError is the error reported when the requested analysis method doesn't exist
type UnknownMethodError struct {
	//Method is the requested method name
	Method string
}

//Error returns the string representation of the error
func (u UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown analysis method '%s'", u.Method)
}

//MissingCategoryError is the error reported when the dataset lacks the data an analysis needs
type MissingCategoryError struct {
	//Method is the requested method name
	Method string
	//Missing has the absent data categories
	Missing []plant.Category
}

//Error returns the string representation of the error
func (m MissingCategoryError) Error() string {
	names := make([]string, 0, len(m.Missing))
	for _, c := range m.Missing {
		names = append(names, string(c))
	}
	return fmt.Sprintf("the %s analysis needs the %s data which the dataset doesn't have", m.Method, strings.Join(names, ", "))
}

//InvalidParameterError is the error reported when a request parameter fails validation
type InvalidParameterError struct {
	//Param is the name of the offending parameter
	Param string
	//Reason describes what is wrong with it
	Reason string
}

//Error returns the string representation of the error
func (i InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", i.Param, i.Reason)
}
