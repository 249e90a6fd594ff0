package main

import (
	"testing"

	"github.com/itchyny/gojq"
)

func mustCompile(t *testing.T, filter string) *gojq.Code {
	t.Helper()
	query, err := gojq.Parse(filter)
	if err != nil {
		t.Fatalf("parse %q: %v", filter, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		t.Fatalf("compile %q: %v", filter, err)
	}
	return code
}
