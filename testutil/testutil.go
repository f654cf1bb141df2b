// Package testutil holds fixture-loading helpers shared across this
// module's test files: a yaml file holding a list of labeled cases,
// each with an input source string and a map of expected substrings
// keyed by which stage of the pipeline the expectation targets.
package testutil

import "gopkg.in/yaml.v3"

// Case is one fixture entry. Expected holds substrings the case's
// rendered output must contain, keyed by stage ("lexer", "parser",
// "emitter"), rather than a full golden string: this module's tests
// assert substrings, not byte-for-byte output, since exact whitespace
// in emitted C++ is not itself a semantic contract.
type Case struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string][]string
}

// ReadTestData unmarshals s into a list of Cases, dropping any with
// Enable false, so a fixture can be temporarily disabled without
// deleting it.
func ReadTestData(s []byte) []Case {
	var data []Case
	if err := yaml.Unmarshal(s, &data); err != nil {
		panic(err)
	}

	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	return data[:i]
}
