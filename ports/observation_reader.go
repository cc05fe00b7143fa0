package ports

// ObservationReader loads raw (score, group) observations from an external
// source such as a spreadsheet or CSV file.
type ObservationReader interface {
	// Read returns parallel score and group slices of equal length.
	Read(path string) (scores []float64, groups []string, err error)
}
