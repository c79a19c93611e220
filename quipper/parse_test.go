package quipper

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ignoreProgramIndex = cmpopts.IgnoreUnexported(Program{})

func TestParseRuleArityKeepsOrder(t *testing.T) {
	got, err := ParseRule("Inputs: 3:Cbit, 1:Qbit, 2:Qbit", RuleIOStatement)
	require.NoError(t, err)
	assert.Equal(t, IOStatement{
		Direction: Inputs,
		Arity: []TypeAssignment{
			{Wire: 3, Type: Cbit},
			{Wire: 1, Type: Qbit},
			{Wire: 2, Type: Qbit},
		},
	}, got)
}

func TestParseRuleGates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Gate
	}{
		{
			name:  "controlled not",
			input: `QGate["not"](0) with controls=[+2,-3] with nocontrol`,
			want: QGate{
				Op:   OpNot,
				Wire: 0,
				Control: Control{
					Controlled: []SignedWire{{Wire: 2, Positive: true}, {Wire: 3, Positive: false}},
					NoControl:  true,
				},
			},
		},
		{
			name:  "x spelling of not",
			input: `QGate["X"]*(4) with nocontrol`,
			want:  QGate{Op: OpNot, Inverted: true, Wire: 4, Control: Control{NoControl: true}},
		},
		{
			name:  "W gate",
			input: `QGate["W"](1) with nocontrol`,
			want:  QGate{Op: OpW, Wire: 1, Control: Control{NoControl: true}},
		},
		{
			name:  "rotation",
			input: `QRot["R(2pi/%)", 2.5e-01]*(3)`,
			want:  QRot{Op: OpR, Inverted: true, Timestep: 0.25, Wire: 3},
		},
		{
			name:  "init",
			input: `QInit0(2) with nocontrol`,
			want:  QInit{Value: false, Wire: 2},
		},
		{
			name:  "labelled init",
			input: `QInit1(0:"qs[0]") with nocontrol`,
			want:  QInit{Value: true, Wire: 0, Label: "qs[0]"},
		},
		{
			name:  "repeated call",
			input: `Subroutine(x154)["SP", shape "([Q,Q,Q],())"] (3,4,5) -> (0,1,2)`,
			want: SubroutineCall{
				Repetitions: 154,
				Name:        "SP",
				Shape:       "([Q,Q,Q],())",
				Inputs:      []Wire{3, 4, 5},
				Outputs:     []Wire{0, 1, 2},
			},
		},
		{
			name:  "controlled call",
			input: `Subroutine["SP", shape "([Q,Q,Q],())"] (3,4,5) -> (0,1,2) with controls=[+5] with nocontrol`,
			want: SubroutineCall{
				Repetitions: 1,
				Name:        "SP",
				Shape:       "([Q,Q,Q],())",
				Inputs:      []Wire{3, 4, 5},
				Outputs:     []Wire{0, 1, 2},
				Control:     Control{Controlled: []SignedWire{{Wire: 5, Positive: true}}, NoControl: true},
			},
		},
		{
			name:  "inverted call before bracket",
			input: `Subroutine*["f", shape "()"] () -> () with nocontrol`,
			want:  SubroutineCall{Repetitions: 1, Name: "f", Shape: "()", Inverted: true, Control: Control{NoControl: true}},
		},
		{
			name:  "comment keeps repeated wires",
			input: `Comment["ENTER: qft_big_endian"](0:"qs[0]", 1:"qs[1]", 0:"again")`,
			want: Comment{
				Text: "ENTER: qft_big_endian",
				WireLabels: []WireLabel{
					{Wire: 0, Label: "qs[0]"},
					{Wire: 1, Label: "qs[1]"},
					{Wire: 0, Label: "again"},
				},
			},
		},
		{
			name:  "comment without labels",
			input: `Comment["MARK"]()`,
			want:  Comment{Text: "MARK"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRule(tt.input, RuleGate)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("gate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRuleControlApp(t *testing.T) {
	got, err := ParseRule("nocontrol", RuleControlApp)
	require.NoError(t, err)
	assert.Equal(t, Control{NoControl: true}, got)

	got, err = ParseRule("controls=[+1,-2]", RuleControlApp)
	require.NoError(t, err)
	assert.Equal(t, Control{Controlled: []SignedWire{{Wire: 1, Positive: true}, {Wire: 2}}}, got)
}

func TestParseProgram(t *testing.T) {
	text := "Inputs: 0:Qbit\n" +
		"QGate[\"H\"]*(0) with controls=[+3,-5, -6] with nocontrol\n" +
		"QRot[\"exp(-i%Z)\", 1e-05](1)\n" +
		"Outputs: 0:Qbit\n"

	p, err := Parse(text)
	require.NoError(t, err)
	assert.Empty(t, p.Subroutines)
	require.Len(t, p.Circuit.Gates, 2)

	first, ok := p.Circuit.Gates[0].(QGate)
	require.True(t, ok)
	assert.True(t, first.Inverted)
	assert.Equal(t, OpH, first.Op)
	assert.Len(t, first.Control.Controlled, 3)

	second, ok := p.Circuit.Gates[1].(QRot)
	require.True(t, ok)
	assert.Equal(t, 1e-05, second.Timestep)
	assert.Equal(t, OpExpZt, second.Op)

	require.NotNil(t, p.Report())
	assert.Empty(t, p.Report().Unresolved)
}

func TestParseProgramWithSubroutines(t *testing.T) {
	text := `Inputs: 0:Qbit, 1:Qbit
Subroutine(x2)["swap_pair", shape "([Q,Q],())"] (0,1) -> (0,1)
Subroutine["oracle", shape "([Q],())"] (1) -> (1)
Outputs: 0:Qbit, 1:Qbit

Subroutine: "swap_pair"
Shape: "([Q,Q],())"
Controllable: classically
Inputs: 0:Qbit, 1:Qbit
QGate["swap"](0) with controls=[+1] with nocontrol
Outputs: 0:Qbit, 1:Qbit
`
	p, err := Parse(text, WithFilename("pair.quip"))
	require.NoError(t, err)

	want := NewProgram(
		Circuit{
			Inputs: []TypeAssignment{{Wire: 0}, {Wire: 1}},
			Gates: []Gate{
				SubroutineCall{Repetitions: 2, Name: "swap_pair", Shape: "([Q,Q],())", Inputs: []Wire{0, 1}, Outputs: []Wire{0, 1}},
				SubroutineCall{Repetitions: 1, Name: "oracle", Shape: "([Q],())", Inputs: []Wire{1}, Outputs: []Wire{1}},
			},
			Outputs: []TypeAssignment{{Wire: 0}, {Wire: 1}},
		},
		[]Subroutine{{
			Name:         "swap_pair",
			Shape:        "([Q,Q],())",
			Controllable: ControllableClassically,
			Circuit: Circuit{
				Inputs: []TypeAssignment{{Wire: 0}, {Wire: 1}},
				Gates: []Gate{
					QGate{Op: OpSwap, Control: Control{Controlled: []SignedWire{{Wire: 1, Positive: true}}, NoControl: true}},
				},
				Outputs: []TypeAssignment{{Wire: 0}, {Wire: 1}},
			},
		}},
	)
	if diff := cmp.Diff(want, p, ignoreProgramIndex); diff != "" {
		t.Fatalf("program mismatch (-want +got):\n%s", diff)
	}

	sub, ok := p.Subroutine("swap_pair")
	require.True(t, ok)
	assert.Equal(t, ControllableClassically, sub.Controllable)

	r := p.Report()
	require.Len(t, r.Resolved, 1)
	require.Len(t, r.Unresolved, 1)
	assert.Equal(t, "oracle", r.Unresolved[0].Name)
	assert.Equal(t, "pair.quip:3:1", r.Unresolved[0].Pos.String())
	assert.Equal(t, []string{"oracle"}, r.UnresolvedNames())
}

func TestParseStrictCalls(t *testing.T) {
	text := "Inputs: 0:Qbit\nSubroutine[\"missing\", shape \"()\"] (0) -> (0)\nOutputs: 0:Qbit\n"

	_, err := Parse(text)
	require.NoError(t, err)

	_, err = Parse(text, WithStrictCalls())
	var semErr *SemanticError
	require.ErrorAs(t, err, &semErr)
	assert.Equal(t, "missing", semErr.Literal)
	assert.Equal(t, 2, semErr.Pos.Line)
}

func TestParseSemanticErrors(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		input   string
		literal string
		msg     string
	}{
		{
			name:    "unknown gate",
			rule:    RuleGate,
			input:   `QGate["bogus"](0) with nocontrol`,
			literal: "bogus",
			msg:     "unknown gate operation",
		},
		{
			name:    "unknown rotation",
			rule:    RuleGate,
			input:   `QRot["exp(-i%X)", 1.0e00](0)`,
			literal: "exp(-i%X)",
			msg:     "unknown rotation operation",
		},
		{
			name:    "duplicate input wire",
			rule:    RuleIOStatement,
			input:   "Inputs: 0:Qbit, 0:Cbit",
			literal: "0",
			msg:     "duplicate wire 0 in Inputs",
		},
		{
			name:    "empty controls",
			rule:    RuleGate,
			input:   `QGate["H"](0) with controls=[] with nocontrol`,
			literal: "controls=[]",
			msg:     "control list must not be empty",
		},
		{
			name:    "unsigned control",
			rule:    RuleGate,
			input:   `QGate["H"](0) with controls=[2] with nocontrol`,
			literal: "2",
			msg:     "control reference needs a + or - polarity",
		},
		{
			name:    "zero repetitions",
			rule:    RuleGate,
			input:   `Subroutine(x0)["f", shape "()"] () -> ()`,
			literal: "x0",
			msg:     "repetition count must be a positive integer",
		},
		{
			name:    "negative target",
			rule:    RuleGate,
			input:   `QGate["H"](-1) with nocontrol`,
			literal: "-1",
			msg:     "wire number must not be negative",
		},
		{
			name:    "negative zero target",
			rule:    RuleGate,
			input:   `QGate["H"](-0) with nocontrol`,
			literal: "-0",
			msg:     "wire number must not be negative",
		},
		{
			name:    "negative zero comment wire",
			rule:    RuleComment,
			input:   `Comment["a"](-0:"x")`,
			literal: "-0",
			msg:     "wire number must not be negative",
		},
		{
			name:    "signed target",
			rule:    RuleGate,
			input:   `QInit0(+1) with nocontrol`,
			literal: "+1",
			msg:     "polarity is only allowed in a control list",
		},
		{
			name: "duplicate subroutine",
			rule: RuleProgram,
			input: "Inputs: 0:Qbit\nOutputs: 0:Qbit\n" +
				"Subroutine: \"f\"\nShape: \"()\"\nControllable: no\nInputs: 0:Qbit\nOutputs: 0:Qbit\n" +
				"Subroutine: \"f\"\nShape: \"()\"\nControllable: no\nInputs: 0:Qbit\nOutputs: 0:Qbit\n",
			literal: "f",
			msg:     "duplicate subroutine definition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRule(tt.input, tt.rule)
			require.Error(t, err)

			var semErr *SemanticError
			require.ErrorAs(t, err, &semErr)
			assert.Equal(t, tt.literal, semErr.Literal)
			assert.Equal(t, tt.msg, semErr.Msg)
			assert.Equal(t, "semantic", ErrorKind(err))
			_, ok := ErrorPosition(err)
			assert.True(t, ok)
		})
	}
}

func TestParseDuplicateWireFailsWholeProgram(t *testing.T) {
	p, err := Parse("Inputs: 0:Qbit, 0:Cbit\nOutputs: 0:Qbit\n")
	require.Error(t, err)
	assert.Nil(t, p)
	assert.Contains(t, err.Error(), "duplicate wire 0")
}

func TestParseUnknownGateNamesLiteral(t *testing.T) {
	_, err := ParseRule(`QGate["bogus"](0) with nocontrol`, RuleGate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bogus"`)
	pos, ok := ErrorPosition(err)
	require.True(t, ok)
	assert.Equal(t, 7, pos.Column)
}
