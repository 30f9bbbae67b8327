package model

// Figure is a Plotly figure description. The frontend passes Data and Layout to Plotly.newPlot as is.
type Figure struct {
	Data   []BarTrace `json:"data"`
	Layout Layout     `json:"layout"`
}

// BarTrace is a Plotly bar trace
type BarTrace struct {
	Type          string   `json:"type"`
	Name          string   `json:"name,omitempty"`
	X             []string `json:"x"`
	Y             []int64  `json:"y"`
	Text          []string `json:"text,omitempty"`
	TextPosition  string   `json:"textposition,omitempty"`
	HoverTemplate string   `json:"hovertemplate,omitempty"`
	Marker        Marker   `json:"marker"`
}

// Marker colors bars by value on a continuous scale
type Marker struct {
	Color      []int64   `json:"color"`
	ColorScale string    `json:"colorscale,omitempty"`
	ShowScale  bool      `json:"showscale"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
}

// ColorBar titles the color scale legend
type ColorBar struct {
	Title Title `json:"title"`
}

// Layout is the subset of the Plotly layout the dashboard uses
type Layout struct {
	Title   Title  `json:"title"`
	BarMode string `json:"barmode"`
	XAxis   Axis   `json:"xaxis"`
	YAxis   Axis   `json:"yaxis"`
}

// Title is a Plotly title object
type Title struct {
	Text string `json:"text"`
}

// Axis is a Plotly axis object
type Axis struct {
	Title Title  `json:"title"`
	Type  string `json:"type,omitempty"`
}

// XValues returns the distinct x values of all traces in first-appearance order
func (f *Figure) XValues() []string {
	seen := make(map[string]bool)
	var out []string
	for _, trace := range f.Data {
		for _, x := range trace.X {
			if !seen[x] {
				seen[x] = true
				out = append(out, x)
			}
		}
	}
	return out
}
