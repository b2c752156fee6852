package operation_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/dirctx/internal/operation"
)

func TestParse_HappyPath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name   string
		tokens []string
		want   operation.Operation
	}{
		{"implicit print all", nil, operation.Operation{Kind: operation.PrintAll}},
		{"print all", []string{"print"}, operation.Operation{Kind: operation.PrintAll}},
		{"print key", []string{"print", "key"}, operation.Operation{Kind: operation.PrintOne, Key: "key"}},
		{"bare key", []string{"key"}, operation.Operation{Kind: operation.PrintOne, Key: "key"}},
		{"add key value", []string{"add", "key", "value"}, operation.Operation{Kind: operation.Add, Key: "key", Value: "value"}},
		{"add empty value", []string{"add", "key", ""}, operation.Operation{Kind: operation.Add, Key: "key"}},
		{"remove key", []string{"rm", "key"}, operation.Operation{Kind: operation.Remove, Key: "key"}},
		{"config", []string{"config"}, operation.Operation{Kind: operation.ShowConfigPath}},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			got, err := operation.Parse(tc.tokens)
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.Equals, tc.want)
		})
	}
}

func TestParse_FailurePath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name    string
		tokens  []string
		wantMsg string
	}{
		{"add without value", []string{"add", "key"}, "invalid arguments: wrong number of arguments for add"},
		{"add without key", []string{"add"}, "invalid arguments: wrong number of arguments for add"},
		{"add with extra", []string{"add", "k", "v", "x"}, "invalid arguments: wrong number of arguments for add"},
		{"rm without key", []string{"rm"}, "invalid arguments: wrong number of arguments for remove"},
		{"rm with extra", []string{"rm", "a", "b"}, "invalid arguments: wrong number of arguments for remove"},
		{"config with extra", []string{"config", "x"}, "invalid arguments: wrong number of arguments for config"},
		{"print with extra", []string{"print", "a", "b"}, "invalid arguments: wrong number of arguments for print"},
		{"key with extra", []string{"key", "extra"}, "invalid arguments: wrong number of arguments for key"},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			_, err := operation.Parse(tc.tokens)
			c.Assert(err, qt.ErrorMatches, tc.wantMsg)
			c.Assert(errors.Is(err, operation.ErrArgs), qt.IsTrue)
		})
	}
}

func TestOperation_Mutates(t *testing.T) {
	c := qt.New(t)

	c.Assert(operation.Operation{Kind: operation.Add}.Mutates(), qt.IsTrue)
	c.Assert(operation.Operation{Kind: operation.Remove}.Mutates(), qt.IsTrue)
	c.Assert(operation.Operation{Kind: operation.PrintAll}.Mutates(), qt.IsFalse)
	c.Assert(operation.Operation{Kind: operation.PrintOne}.Mutates(), qt.IsFalse)
	c.Assert(operation.Operation{Kind: operation.ShowConfigPath}.Mutates(), qt.IsFalse)
}

func TestOperation_String(t *testing.T) {
	c := qt.New(t)

	c.Assert(operation.Operation{Kind: operation.PrintAll}.String(), qt.Equals, "print-all")
	c.Assert(operation.Operation{Kind: operation.PrintOne, Key: "k"}.String(), qt.Equals, "print k")
	c.Assert(operation.Operation{Kind: operation.Add, Key: "k", Value: "v"}.String(), qt.Equals, "add k=v")
	c.Assert(operation.Operation{Kind: operation.Remove, Key: "k"}.String(), qt.Equals, "remove k")
	c.Assert(operation.Kind(42).String(), qt.Equals, "Kind(42)")
}
