package quipper

import (
	"fmt"
	"strconv"
	"strings"
)

// Render writes p back in canonical source form: the main circuit, then
// each subroutine after a blank line. Parsing the result yields the same
// Program.
func Render(p *Program) string {
	var sb strings.Builder
	writeCircuit(&sb, p.Circuit)
	for _, s := range p.Subroutines {
		sb.WriteString("\n")
		writeSubroutine(&sb, s)
	}
	return sb.String()
}

// RenderCircuit writes a circuit, one statement per line.
func RenderCircuit(c Circuit) string {
	var sb strings.Builder
	writeCircuit(&sb, c)
	return sb.String()
}

// RenderSubroutine writes a subroutine header followed by its body.
func RenderSubroutine(s Subroutine) string {
	var sb strings.Builder
	writeSubroutine(&sb, s)
	return sb.String()
}

// RenderGate writes a single gate statement without a trailing newline.
func RenderGate(g Gate) string {
	var sb strings.Builder
	writeGate(&sb, g)
	return sb.String()
}

// FormatTimestep writes a float in the only shape the lexer accepts:
// mantissa, "e", an optional minus sign and two exponent digits. Values
// whose exponent needs three digits keep the exponent at 99 or -99 and
// move the rest into the mantissa, e.g. 1e100 is written "10e99".
func FormatTimestep(f float64) string {
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	e, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	switch {
	case e > 99:
		mant, e = shiftPoint(mant, e-99), 99
	case e < -99:
		mant, e = shiftPoint(mant, e+99), -99
	}
	if e < 0 {
		return fmt.Sprintf("%se-%02d", mant, -e)
	}
	return fmt.Sprintf("%se%02d", mant, e)
}

// shiftPoint moves the decimal point of a normalized mantissa ("d" or
// "d.ddd", optionally signed) k places to the right, or left when k is
// negative.
func shiftPoint(mant string, k int) string {
	sign := ""
	if strings.HasPrefix(mant, "-") {
		sign, mant = "-", mant[1:]
	}
	digits := strings.Replace(mant, ".", "", 1)
	point := 1 + k
	switch {
	case point >= len(digits):
		return sign + digits + strings.Repeat("0", point-len(digits))
	case point <= 0:
		return sign + "0." + strings.Repeat("0", -point) + digits
	default:
		return sign + digits[:point] + "." + digits[point:]
	}
}

func writeSubroutine(sb *strings.Builder, s Subroutine) {
	fmt.Fprintf(sb, "Subroutine: %s\n", quote(s.Name))
	fmt.Fprintf(sb, "Shape: %s\n", quote(s.Shape))
	fmt.Fprintf(sb, "Controllable: %s\n", s.Controllable)
	writeCircuit(sb, s.Circuit)
}

func writeCircuit(sb *strings.Builder, c Circuit) {
	writeArity(sb, Inputs, c.Inputs)
	for _, g := range c.Gates {
		writeGate(sb, g)
		sb.WriteByte('\n')
	}
	writeArity(sb, Outputs, c.Outputs)
}

func writeArity(sb *strings.Builder, dir Direction, arity []TypeAssignment) {
	sb.WriteString(dir.String())
	sb.WriteString(":")
	for i, ta := range arity {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(sb, " %d:%s", ta.Wire, ta.Type)
	}
	sb.WriteByte('\n')
}

func writeGate(sb *strings.Builder, g Gate) {
	switch g := g.(type) {
	case QGate:
		fmt.Fprintf(sb, "QGate[%s]%s(%d) with ", quote(g.Op.Name()), star(g.Inverted), g.Wire)
		writeControl(sb, g.Control)
	case QRot:
		fmt.Fprintf(sb, "QRot[%s,%s]%s(%d)", quote(g.Op.Name()), FormatTimestep(g.Timestep), star(g.Inverted), g.Wire)
	case QInit:
		fmt.Fprintf(sb, "QInit%d(%d", boolDigit(g.Value), g.Wire)
		if g.Label != "" {
			fmt.Fprintf(sb, ":%s", quote(g.Label))
		}
		sb.WriteString(") with nocontrol")
	case Comment:
		fmt.Fprintf(sb, "Comment[%s](", quote(g.Text))
		for i, wl := range g.WireLabels {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%d:%s", wl.Wire, quote(wl.Label))
		}
		sb.WriteByte(')')
	case SubroutineCall:
		sb.WriteString("Subroutine")
		if g.Repetitions != 1 {
			fmt.Fprintf(sb, "(x%d)", g.Repetitions)
		}
		fmt.Fprintf(sb, "[%s, shape %s]%s (%s) -> (%s)", quote(g.Name), quote(g.Shape), star(g.Inverted), joinWires(g.Inputs), joinWires(g.Outputs))
		if g.Control.IsControlled() || g.Control.NoControl {
			sb.WriteString(" with ")
			writeControl(sb, g.Control)
		}
	}
}

func writeControl(sb *strings.Builder, c Control) {
	if !c.IsControlled() {
		sb.WriteString("nocontrol")
		return
	}
	sb.WriteString("controls=[")
	for i, sw := range c.Controlled {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(sw.String())
	}
	sb.WriteByte(']')
	if c.NoControl {
		sb.WriteString(" with nocontrol")
	}
}

func joinWires(ws []Wire) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = strconv.Itoa(int(w))
	}
	return strings.Join(parts, ",")
}

// quote wraps s in double quotes verbatim; strings have no escapes.
func quote(s string) string {
	return "\"" + s + "\""
}

func star(b bool) string {
	if b {
		return "*"
	}
	return ""
}

func boolDigit(b bool) int {
	if b {
		return 1
	}
	return 0
}
