package quipper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTreeRules(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		input string
		want  string
	}{
		{
			name:  "arity with trailing blank",
			rule:  RuleArity,
			input: "0:Qbit\n        ",
			want:  "(arity (typeassignment 0 Qbit))",
		},
		{
			name:  "iostatement",
			rule:  RuleIOStatement,
			input: "Inputs: 0:Qbit, 1:Cbit",
			want:  "(iostatement Inputs (arity (typeassignment 0 Qbit) (typeassignment 1 Cbit)))",
		},
		{
			name:  "controlled qgate",
			rule:  RuleGate,
			input: `QGate["not"](0) with controls=[+2,-3] with nocontrol`,
			want:  `(qgate "not" (inversion) 0 (control_app (signed_list +2 -3) nocontrol))`,
		},
		{
			name:  "inverted qgate",
			rule:  RuleQGate,
			input: `QGate["H"]*(0) with nocontrol`,
			want:  `(qgate "H" (inversion *) 0 (control_app nocontrol))`,
		},
		{
			name:  "qrot",
			rule:  RuleQRot,
			input: `QRot["exp(-i%Z)", 1e-05](1)`,
			want:  `(qrot "exp(-i%Z)" 1e-05 (inversion) 1)`,
		},
		{
			name:  "comment",
			rule:  RuleGate,
			input: `Comment["ENTER: qft_big_endian"](0:"qs[0]", 1:"qs[1]")`,
			want:  `(comment "ENTER: qft_big_endian" (wire_label_list 0 "qs[0]" 1 "qs[1]"))`,
		},
		{
			name:  "bare qinit",
			rule:  RuleGate,
			input: `QInit1(0) with nocontrol`,
			want:  `(qinit QInit1 0)`,
		},
		{
			name:  "labelled qinit",
			rule:  RuleQInit,
			input: `QInit1(0:"qs[0]") with nocontrol`,
			want:  `(qinit QInit1 (wire 0 "qs[0]"))`,
		},
		{
			name:  "wire",
			rule:  RuleWire,
			input: `4:"anc"`,
			want:  `(wire 4 "anc")`,
		},
		{
			name:  "controlled call",
			rule:  RuleGate,
			input: `Subroutine["SP", shape "([Q,Q,Q],())"] (3,4,5) -> (0,1,2) with controls=[+5] with nocontrol`,
			want:  `(subroutine_call (repetition) "SP" "([Q,Q,Q],())" (inversion) (int_list 3 4 5) (int_list 0 1 2) (control_app (signed_list +5) nocontrol))`,
		},
		{
			name:  "repeated call",
			rule:  RuleSubroutineCall,
			input: `Subroutine(x154)["SP", shape "([Q,Q,Q],())"] (3,4,5) -> (0,1,2)`,
			want:  `(subroutine_call (repetition x154) "SP" "([Q,Q,Q],())" (inversion) (int_list 3 4 5) (int_list 0 1 2) (control_app))`,
		},
		{
			name:  "int list",
			rule:  RuleIntList,
			input: `7,8`,
			want:  `(int_list 7 8)`,
		},
		{
			name:  "control app",
			rule:  RuleControlApp,
			input: `controls=[-1] with nocontrol`,
			want:  `(control_app (signed_list -1) nocontrol)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseTree(tt.input, tt.rule)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}

func TestParseTreeSubroutine(t *testing.T) {
	text := `
        Subroutine: "S1"
        Shape: "([Q],())"
        Controllable: yes
        Inputs: 0:Qbit
        QGate["H"](0) with nocontrol
        Outputs: 0:Qbit
        `
	n, err := ParseTree(text, RuleSubroutine)
	require.NoError(t, err)
	assert.Equal(t, `(subroutine "S1" "([Q],())" yes (circuit `+
		`(iostatement Inputs (arity (typeassignment 0 Qbit))) `+
		`(qgate "H" (inversion) 0 (control_app nocontrol)) `+
		`(iostatement Outputs (arity (typeassignment 0 Qbit)))))`, n.String())
	assert.Equal(t, 2, n.Pos().Line)
}

func TestParseTreeProgram(t *testing.T) {
	text := "Inputs: 0:Qbit\n" +
		"Subroutine[\"A\", shape \"()\"] (0) -> (0)\n" +
		"\n" +
		"Outputs: 0:Qbit\n" +
		"\n" +
		"Subroutine: \"A\"\n" +
		"Shape: \"()\"\n" +
		"Controllable: no\n" +
		"Inputs: 0:Qbit\n" +
		"Outputs: 0:Qbit\n"
	n, err := ParseTree(text, RuleProgram)
	require.NoError(t, err)
	require.Len(t, n.Children, 2)
	assert.Equal(t, RuleCircuit, n.Children[0].Rule)
	assert.Equal(t, RuleSubroutine, n.Children[1].Rule)
}

func TestParseTreeSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		rule     Rule
		input    string
		errRule  Rule
		line     int
		column   int
		expected string
	}{
		{
			name:     "qgate without with",
			rule:     RuleQGate,
			input:    `QGate["H"](0) nocontrol`,
			errRule:  RuleQGate,
			line:     1,
			column:   15,
			expected: `"with"`,
		},
		{
			name:     "missing outputs",
			rule:     RuleCircuit,
			input:    "Inputs: 0:Qbit\nQGate[\"H\"](0) with nocontrol\n",
			errRule:  RuleGate,
			line:     3,
			column:   1,
			expected: "a gate",
		},
		{
			name:     "two statements on one line",
			rule:     RuleCircuit,
			input:    "Inputs: 0:Qbit QInit0(0) with nocontrol\nOutputs: 0:Qbit",
			errRule:  RuleCircuit,
			line:     1,
			column:   16,
			expected: "end of statement",
		},
		{
			name:     "bad type",
			rule:     RuleTypeAssignment,
			input:    "0:Inputs",
			errRule:  RuleTypeAssignment,
			line:     1,
			column:   3,
			expected: `"Qbit" or "Cbit"`,
		},
		{
			name:     "trailing tokens",
			rule:     RuleWire,
			input:    `0:"a" 1`,
			errRule:  RuleWire,
			line:     1,
			column:   7,
			expected: "end of input",
		},
		{
			name:     "qrot with integer timestep",
			rule:     RuleQRot,
			input:    `QRot["R(2pi/%)", 2](0)`,
			errRule:  RuleQRot,
			line:     1,
			column:   18,
			expected: "float",
		},
		{
			name:     "comment label list with trailing comma",
			rule:     RuleComment,
			input:    `Comment["a"](0:"x",)`,
			errRule:  RuleWire,
			line:     1,
			column:   20,
			expected: "integer",
		},
		{
			name:     "circuit starting with outputs",
			rule:     RuleCircuit,
			input:    "Outputs: 0:Qbit",
			errRule:  RuleCircuit,
			line:     1,
			column:   1,
			expected: `"Inputs"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTree(tt.input, tt.rule)
			require.Error(t, err)

			var synErr *SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.Equal(t, tt.errRule, synErr.Rule)
			assert.Equal(t, tt.line, synErr.Pos.Line)
			assert.Equal(t, tt.column, synErr.Pos.Column)
			assert.Equal(t, tt.expected, synErr.Expected)
			assert.Equal(t, "syntax", ErrorKind(err))
		})
	}
}

func TestParseTreeRejectsInternalRules(t *testing.T) {
	_, err := ParseTree("*", RuleInversion)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inversion is not a parse entry rule")
}

func TestLookupRule(t *testing.T) {
	for r := RuleProgram; r <= RuleTerminal; r++ {
		got, ok := LookupRule(r.String())
		require.True(t, ok, r.String())
		assert.Equal(t, r, got)
	}
	_, ok := LookupRule("statement")
	assert.False(t, ok)
}
