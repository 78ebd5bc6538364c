package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Dominios del Euromilhões.
const (
	NumberDomain   = 50 // números principales 1..50
	StarDomain     = 12 // estrellas 1..12
	NumbersPerDraw = 5
	StarsPerDraw   = 2
)

// separator separa números y estrellas: "1 2 3 4 5 + 6 7".
var separator = regexp.MustCompile(`\s*\+\s*`)

// Draw es un sorteo parseado. Inmutable una vez creado.
type Draw struct {
	Numbers []int
	Stars   []int
}

// FormatError indica una línea de sorteo mal formada.
// Index es la posición de la línea dentro del lote (-1 si se parseó suelta).
type FormatError struct {
	Line   string
	Index  int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("draw line %d %q: %s", e.Index, e.Line, e.Reason)
	}
	return fmt.Sprintf("draw line %q: %s", e.Line, e.Reason)
}

// ParseDrawLine parsea "<n1> <n2> <n3> <n4> <n5> + <s1> <s2>".
//
// Solo valida que haya exactamente dos segmentos y que todos los tokens sean
// enteros. No valida cantidades ni rangos: valores fuera de dominio se ignoran
// más adelante en BuildStats.
func ParseDrawLine(line string) (Draw, error) {
	parts := separator.Split(strings.TrimSpace(line), -1)
	if len(parts) != 2 {
		return Draw{}, &FormatError{Line: line, Index: -1, Reason: fmt.Sprintf("expected 2 segments, got %d", len(parts))}
	}

	numbers, err := parseInts(parts[0])
	if err != nil {
		return Draw{}, &FormatError{Line: line, Index: -1, Reason: err.Error()}
	}
	stars, err := parseInts(parts[1])
	if err != nil {
		return Draw{}, &FormatError{Line: line, Index: -1, Reason: err.Error()}
	}
	return Draw{Numbers: numbers, Stars: stars}, nil
}

// ParseDrawLines parsea un lote completo. Una sola línea mala invalida el lote.
func ParseDrawLines(lines []string) ([]Draw, error) {
	draws := make([]Draw, 0, len(lines))
	for i, line := range lines {
		d, err := ParseDrawLine(line)
		if err != nil {
			if fe, ok := err.(*FormatError); ok {
				fe.Index = i
			}
			return nil, err
		}
		draws = append(draws, d)
	}
	return draws, nil
}

// FormatDrawLine es la inversa de ParseDrawLine. El formato es el del cache en
// disco y debe mantenerse exacto.
func FormatDrawLine(d Draw) string {
	return joinInts(d.Numbers) + " + " + joinInts(d.Stars)
}

func parseInts(segment string) ([]int, error) {
	fields := strings.Fields(segment)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
