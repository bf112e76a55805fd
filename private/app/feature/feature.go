// Copyright 2020 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package feature turns the features.enabled list of a config file into a
// struct of boolean flags.
//
// Every boolean field of the struct is a flag. Its name is the first element
// of the field's feature tag, or the field name if there is no tag. Other
// fields are ignored.
package feature

import (
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/ringsdn/ringsdn/pkg/private/serrors"
)

// Parse enables the named features in featureSet, which must be a non-nil
// pointer to a struct. Unknown names fail the whole parse and leave the
// set untouched.
func Parse(names []string, featureSet any) error {
	val := reflect.ValueOf(featureSet)
	if !val.IsValid() || val.Kind() != reflect.Pointer {
		return serrors.New("feature set must be a pointer")
	}
	if val.IsNil() {
		return serrors.New("feature set must not be nil")
	}
	flags := flagIndex(val.Type())
	fields := make([]int, 0, len(names))
	for _, name := range names {
		i, ok := flags[name]
		if !ok {
			return serrors.New("feature not supported", "feature", name)
		}
		fields = append(fields, i)
	}
	for _, i := range fields {
		val.Elem().Field(i).SetBool(true)
	}
	return nil
}

// Features returns the sorted names of the flags in featureSet.
func Features(featureSet any) []string {
	if featureSet == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(flagIndex(reflect.TypeOf(featureSet))))
}

// String joins the sorted flag names with sep.
func String(featureSet any, sep string) string {
	return strings.Join(Features(featureSet), sep)
}

// flagIndex maps flag names to field indexes of t or of the struct t points
// to.
func flagIndex(t reflect.Type) map[string]int {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	flags := make(map[string]int)
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Type.Kind() != reflect.Bool {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("feature"); ok {
			name, _, _ = strings.Cut(tag, ",")
		}
		flags[name] = i
	}
	return flags
}
