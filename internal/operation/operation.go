// Package operation turns command-line tokens into the single operation a
// context invocation performs.
package operation

import (
	"errors"
	"fmt"
)

// ErrArgs is wrapped by every Parse failure.
var ErrArgs = errors.New("invalid arguments")

// Kind identifies what an Operation does.
type Kind int

const (
	PrintAll       Kind = iota // print every visible key
	PrintOne                   // print the resolved value of Key
	Add                        // set Key=Value at the working directory
	Remove                     // remove Key from the working directory
	ShowConfigPath             // print the config file path
)

var kindNames = map[Kind]string{
	PrintAll:       "print-all",
	PrintOne:       "print",
	Add:            "add",
	Remove:         "remove",
	ShowConfigPath: "config",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Operation is a fully validated request.
type Operation struct {
	Kind  Kind
	Key   string // PrintOne, Add, Remove
	Value string // Add
}

// Mutates reports whether applying the operation requires a save.
func (o Operation) Mutates() bool {
	return o.Kind == Add || o.Kind == Remove
}

func (o Operation) String() string {
	switch o.Kind {
	case PrintOne, Remove:
		return fmt.Sprintf("%s %s", o.Kind, o.Key)
	case Add:
		return fmt.Sprintf("%s %s=%s", o.Kind, o.Key, o.Value)
	default:
		return o.Kind.String()
	}
}

// Parse maps tokens to an Operation:
//
//	(none)          print all
//	print [key]     print all, or one key
//	add key value   set a value
//	rm key          remove a value
//	config          show the config path
//	key             print one key
func Parse(tokens []string) (Operation, error) {
	if len(tokens) == 0 {
		return Operation{Kind: PrintAll}, nil
	}

	verb, args := tokens[0], tokens[1:]
	switch verb {
	case "print":
		switch len(args) {
		case 0:
			return Operation{Kind: PrintAll}, nil
		case 1:
			return Operation{Kind: PrintOne, Key: args[0]}, nil
		}
		return Operation{}, arity("print")
	case "add":
		if len(args) != 2 {
			return Operation{}, arity("add")
		}
		return Operation{Kind: Add, Key: args[0], Value: args[1]}, nil
	case "rm":
		if len(args) != 1 {
			return Operation{}, arity("remove")
		}
		return Operation{Kind: Remove, Key: args[0]}, nil
	case "config":
		if len(args) != 0 {
			return Operation{}, arity("config")
		}
		return Operation{Kind: ShowConfigPath}, nil
	}

	if len(args) != 0 {
		return Operation{}, arity(verb)
	}
	return Operation{Kind: PrintOne, Key: verb}, nil
}

func arity(name string) error {
	return fmt.Errorf("%w: wrong number of arguments for %s", ErrArgs, name)
}
