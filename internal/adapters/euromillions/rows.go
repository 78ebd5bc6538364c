package euromillions

import (
	"slices"
	"strconv"
	"time"

	"github.com/alejandrodnm/eurokeys/internal/domain"
)

// Ball es una bola tal como aparece en la tabla de resultados.
type Ball struct {
	Text string `json:"text"`
	Star bool   `json:"star"` // la <li> lleva la clase lucky-star
}

// RowToLine convierte las bolas de una fila en una línea de sorteo.
// Solo cuenta bolas cuyo texto son dígitos; la fila es válida únicamente con
// exactamente 5 números y 2 estrellas.
func RowToLine(balls []Ball) (string, bool) {
	var d domain.Draw
	for _, b := range balls {
		n, ok := digits(b.Text)
		if !ok {
			continue
		}
		if b.Star {
			d.Stars = append(d.Stars, n)
		} else {
			d.Numbers = append(d.Numbers, n)
		}
	}
	if len(d.Numbers) != domain.NumbersPerDraw || len(d.Stars) != domain.StarsPerDraw {
		return "", false
	}
	return domain.FormatDrawLine(d), true
}

// rowDateLayout es el formato del enlace de cada sorteo: /results/31-12-2024.
const rowDateLayout = "02-01-2006"

// Row es una fila de la tabla de resultados de un año.
type Row struct {
	Date  string `json:"date"` // dd-mm-yyyy, vacío si la fila no enlaza al sorteo
	Balls []Ball `json:"balls"`
}

type datedLine struct {
	line string
	date time.Time
}

// RowsToLines convierte las filas de una página en líneas de sorteo, del más
// antiguo al más reciente. Las filas inválidas se descartan.
//
// Si todas las filas válidas tienen fecha se ordena por fecha. Si falta alguna
// se asume el orden de la página, que lista primero el sorteo más reciente.
func RowsToLines(rows []Row) []string {
	dated := make([]datedLine, 0, len(rows))
	allDated := true
	for _, row := range rows {
		line, ok := RowToLine(row.Balls)
		if !ok {
			continue
		}
		d, err := time.Parse(rowDateLayout, row.Date)
		if err != nil {
			allDated = false
		}
		dated = append(dated, datedLine{line: line, date: d})
	}

	if allDated {
		slices.SortStableFunc(dated, func(a, b datedLine) int { return a.date.Compare(b.date) })
	} else {
		slices.Reverse(dated)
	}

	lines := make([]string, len(dated))
	for i, d := range dated {
		lines[i] = d.line
	}
	return lines
}

func digits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
