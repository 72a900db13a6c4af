package output

// GenerateOutput is the JSON output for the generate command.
type GenerateOutput struct {
	Rows      []string       `json:"rows"`
	Count     int            `json:"count"`
	Counts    map[string]int `json:"value_counts,omitempty"`
	Continued bool           `json:"continued,omitempty"`
}

// VarInfo describes one template variable for the vars command.
type VarInfo struct {
	Name        string `json:"name"`
	Occurrences int    `json:"occurrences"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Identifier  bool   `json:"identifier"`
}

// VarsOutput is the JSON output for the vars command.
type VarsOutput struct {
	Variables []VarInfo `json:"variables"`
	Count     int       `json:"count"`
}
