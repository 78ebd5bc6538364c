package domain

import "time"

// Origen de los sorteos guardados.
const (
	SourceScraping  = "scraping"
	SourceSimulated = "simulated"
)

// YearRange es el rango de años cubierto por un histórico obtenido por scraping.
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// DrawHistory es el histórico de líneas de sorteo más su metadata de origen.
// Draws está en orden cronológico tal como lo devolvió el colaborador.
type DrawHistory struct {
	Draws        []string
	Timestamp    time.Time
	Source       string
	LastScraping *time.Time // nil si los datos son simulados
	YearRange    *YearRange // nil si los datos son simulados
}

// IsEmpty devuelve true si no hay ningún sorteo.
func (h DrawHistory) IsEmpty() bool {
	return len(h.Draws) == 0
}

// Years devuelve el rango de años. Sin rango explícito asume startYear..now.
func (h DrawHistory) Years(startYear int, now time.Time) (start, end int) {
	if h.YearRange != nil {
		return h.YearRange.Start, h.YearRange.End
	}
	return startYear, now.Year()
}
