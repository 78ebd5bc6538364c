package domain

// CacheInfo describe el origen de los datos mostrados en el dashboard.
type CacheInfo struct {
	Source         string  `json:"source"`
	LastScraping   *string `json:"lastScraping"`
	CacheTimestamp *string `json:"cacheTimestamp"`
}

// Dashboard es el documento que sirve /api/analysis.
type Dashboard struct {
	TotalDraws        int               `json:"totalDraws"`
	LastDrawDate      string            `json:"lastDrawDate"`
	LastUpdate        string            `json:"lastUpdate"`
	LastDrawNumbers   []int             `json:"lastDrawNumbers"`
	LastDrawStars     []int             `json:"lastDrawStars"`
	CacheInfo         CacheInfo         `json:"cacheInfo"`
	StrategicKeys     KeySet            `json:"strategicKeys"`
	AnalysisAvailable bool              `json:"analysisAvailable"`
	TopNumbers        []NumberFrequency `json:"topNumbers"`
	OverdueNumbers    []OverdueNumber   `json:"overdueNumbers"`
	NumberFrequencies []int             `json:"numberFrequencies"`
	StarFrequencies   []int             `json:"starFrequencies"`
}
