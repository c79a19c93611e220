package quipper

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProgram = `Inputs: 0:Qbit, 1:Qbit, 2:Cbit
Comment["ENTER: qft_big_endian"](0:"qs[0]", 1:"qs[1]")
QInit0(3) with nocontrol
QInit1(4:"anc") with nocontrol
QGate["H"](0) with nocontrol
QGate["x"]*(1) with controls=[+0,-3] with nocontrol
QRot["exp(-i%Z)", 1.5e-03](1)
QRot["R(2pi/%)", 2e00]*(0)
Subroutine(x2)["SP", shape "([Q,Q],())"]* (0,1) -> (0,1) with controls=[+3] with nocontrol
Subroutine["SP", shape "([Q,Q],())"] (1,0) -> (1,0)
Subroutine["ext", shape "()"] () -> () with nocontrol
Comment["EXIT"](0:"qs[0]", 0:"again")
Outputs: 0:Qbit, 1:Qbit, 2:Cbit

Subroutine: "SP"
Shape: "([Q,Q],())"
Controllable: classically
Inputs: 0:Qbit, 1:Qbit
QGate["swap"](0) with controls=[+1] with nocontrol
QGate["omega"](1) with nocontrol
Outputs: 0:Qbit, 1:Qbit
`

func TestRenderRoundTrip(t *testing.T) {
	first, err := Parse(sampleProgram)
	require.NoError(t, err)

	text := Render(first)
	second, err := Parse(text)
	require.NoError(t, err, text)

	if diff := cmp.Diff(first, second, ignoreProgramIndex); diff != "" {
		t.Fatalf("round trip changed the program (-first +second):\n%s", diff)
	}
	assert.Equal(t, text, Render(second))
}

func TestRenderRoundTripWideExponents(t *testing.T) {
	tests := []struct {
		timestep string
		rendered string
	}{
		{"10.0e99", "10e99"},
		{"0.001e-99", "0.001e-99"},
		{"123e99", "123e99"},
	}

	for _, tt := range tests {
		t.Run(tt.timestep, func(t *testing.T) {
			src := "Inputs: 0:Qbit\nQRot[\"R(2pi/%)\", " + tt.timestep + "](0)\nOutputs: 0:Qbit\n"
			first, err := Parse(src)
			require.NoError(t, err)

			text := Render(first)
			assert.Contains(t, text, ","+tt.rendered+"](0)")
			second, err := Parse(text)
			require.NoError(t, err, text)

			if diff := cmp.Diff(first, second, ignoreProgramIndex); diff != "" {
				t.Fatalf("round trip changed the program (-first +second):\n%s", diff)
			}
		})
	}
}

func TestRenderCanonicalForm(t *testing.T) {
	p, err := Parse("Inputs: 0:Qbit,1:Qbit\n\nQGate[\"X\"](0)  with  controls=[+1]  with nocontrol\nQRot[\"exp(-i%Z)\", 1e-05](1)\nOutputs: 0:Qbit,1:Qbit")
	require.NoError(t, err)

	want := "Inputs: 0:Qbit, 1:Qbit\n" +
		"QGate[\"not\"](0) with controls=[+1] with nocontrol\n" +
		"QRot[\"exp(-i%Z)\",1e-05](1)\n" +
		"Outputs: 0:Qbit, 1:Qbit\n"
	assert.Equal(t, want, Render(p))
}

func TestRenderGate(t *testing.T) {
	tests := []struct {
		gate Gate
		want string
	}{
		{QGate{Op: OpIX, Control: Control{NoControl: true}}, `QGate["iX"](0) with nocontrol`},
		{QRot{Op: OpR, Timestep: -0.125, Wire: 2}, `QRot["R(2pi/%)",-1.25e-01](2)`},
		{QInit{Value: true, Wire: 5}, `QInit1(5) with nocontrol`},
		{Comment{Text: "c", WireLabels: []WireLabel{{Wire: 1, Label: `a\b`}}}, `Comment["c"](1:"a\b")`},
		{SubroutineCall{Repetitions: 3, Name: "f", Shape: "()", Inputs: []Wire{1}}, `Subroutine(x3)["f", shape "()"] (1) -> ()`},
		{
			SubroutineCall{Repetitions: 1, Name: "g", Shape: "s", Control: Control{Controlled: []SignedWire{{Wire: 4}}}},
			`Subroutine["g", shape "s"] () -> () with controls=[-4]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderGate(tt.gate))
			back, err := ParseRule(tt.want, RuleGate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, RenderGate(back.(Gate)))
		})
	}
}

func TestFormatTimestep(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1e-05, "1e-05"},
		{0.0015, "1.5e-03"},
		{2, "2e00"},
		{0, "0e00"},
		{-31.25, "-3.125e01"},
		{1e100, "10e99"},
		{1e-102, "0.001e-99"},
		{-1.5e101, "-150e99"},
		{2.5e-101, "0.025e-99"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTimestep(tt.in))
	}
}

func TestRenderSubroutine(t *testing.T) {
	s := Subroutine{
		Name:         "S1",
		Shape:        "([Q],())",
		Controllable: ControllableYes,
		Circuit: Circuit{
			Inputs:  []TypeAssignment{{Wire: 0}},
			Gates:   []Gate{QGate{Op: OpT, Control: Control{NoControl: true}}},
			Outputs: []TypeAssignment{{Wire: 0}},
		},
	}
	text := RenderSubroutine(s)
	assert.Equal(t, "Subroutine: \"S1\"\nShape: \"([Q],())\"\nControllable: yes\nInputs: 0:Qbit\nQGate[\"T\"](0) with nocontrol\nOutputs: 0:Qbit\n", text)

	back, err := ParseRule(text, RuleSubroutine)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}
