package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"qtermquip/quipper"
)

type jsonGate struct {
	Kind   string       `json:"kind"`
	Source string       `json:"source"`
	Fields quipper.Gate `json:"fields"`
}

type jsonCircuit struct {
	Inputs  []quipper.TypeAssignment `json:"inputs"`
	Gates   []jsonGate               `json:"gates"`
	Outputs []quipper.TypeAssignment `json:"outputs"`
}

type jsonSubroutine struct {
	Name         string      `json:"name"`
	Shape        string      `json:"shape"`
	Controllable string      `json:"controllable"`
	Circuit      jsonCircuit `json:"circuit"`
}

type jsonProgram struct {
	Circuit     jsonCircuit      `json:"circuit"`
	Subroutines []jsonSubroutine `json:"subroutines"`
	Unresolved  []string         `json:"unresolved,omitempty"`
	Recursive   []string         `json:"recursive,omitempty"`
}

func toJSONGate(g quipper.Gate) jsonGate {
	return jsonGate{Kind: quipper.GateKind(g), Source: quipper.RenderGate(g), Fields: g}
}

func toJSONCircuit(c quipper.Circuit) jsonCircuit {
	out := jsonCircuit{Inputs: c.Inputs, Outputs: c.Outputs, Gates: []jsonGate{}}
	for _, g := range c.Gates {
		out.Gates = append(out.Gates, toJSONGate(g))
	}
	return out
}

func toJSONSubroutine(s quipper.Subroutine) jsonSubroutine {
	return jsonSubroutine{
		Name:         s.Name,
		Shape:        s.Shape,
		Controllable: s.Controllable.String(),
		Circuit:      toJSONCircuit(s.Circuit),
	}
}

func toJSONProgram(p *quipper.Program) jsonProgram {
	out := jsonProgram{Circuit: toJSONCircuit(p.Circuit), Subroutines: []jsonSubroutine{}}
	for _, s := range p.Subroutines {
		out.Subroutines = append(out.Subroutines, toJSONSubroutine(s))
	}
	if r := p.Report(); r != nil {
		out.Unresolved = r.UnresolvedNames()
		out.Recursive = r.Recursive
	}
	return out
}

// toJSON maps a ParseRule result to its JSON form.
func toJSON(v any) any {
	switch v := v.(type) {
	case *quipper.Program:
		return toJSONProgram(v)
	case quipper.Circuit:
		return toJSONCircuit(v)
	case quipper.Subroutine:
		return toJSONSubroutine(v)
	case quipper.Gate:
		return toJSONGate(v)
	}
	return v
}

func newParseCmd(a *app) *cobra.Command {
	var (
		tree     bool
		ruleName string
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the parse tree or semantic model of a file",
		Long: `Parse a Quipper ASCII file.

By default the semantic model is printed as JSON. With --tree the concrete
parse tree is printed as an s-expression instead. --rule parses the file as
a single grammar rule, such as "gate" or "arity".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, ok := quipper.LookupRule(ruleName)
			if !ok || !rule.EntryPoint() {
				return errors.Errorf("unknown rule %q", ruleName)
			}
			path := args[0]

			if tree {
				data, err := os.ReadFile(path)
				if err != nil {
					return errors.Wrap(err, "read input")
				}
				n, err := quipper.ParseTree(string(data), rule, quipper.WithFilename(path))
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, n.String())
				return nil
			}

			var value any
			if rule == quipper.RuleProgram {
				p, err := a.load(cmd.Context(), path)
				if err != nil {
					return err
				}
				value = p
			} else {
				data, err := os.ReadFile(path)
				if err != nil {
					return errors.Wrap(err, "read input")
				}
				value, err = quipper.ParseRule(string(data), rule, a.parseOptions(path)...)
				if err != nil {
					return err
				}
			}

			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return errors.Wrap(enc.Encode(toJSON(value)), "encode json")
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "print the concrete parse tree")
	cmd.Flags().StringVar(&ruleName, "rule", "program", "grammar rule to parse the file as")
	return cmd
}
