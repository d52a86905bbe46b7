package diagnostics

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

type wpdDataset struct {
	Name string `json:"name"`
	Data []struct {
		Value []float64 `json:"value"`
	} `json:"data"`
}

// wpdProject is the subset of a WebPlotDigitizer project file that holds
// the digitised points. Version 4 projects use datasetColl; older exports
// nest the datasets under wpd.dataSeries.
type wpdProject struct {
	DatasetColl []wpdDataset `json:"datasetColl"`
	WPD         struct {
		DataSeries []wpdDataset `json:"dataSeries"`
	} `json:"wpd"`
}

// ReadDigitized loads the datasets of a WebPlotDigitizer JSON project.
// Points in each dataset are sorted by x.
func ReadDigitized(path string) ([]Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read digitized data: %w", err)
	}
	return ParseDigitized(data)
}

// ParseDigitized decodes a WebPlotDigitizer JSON project.
func ParseDigitized(data []byte) ([]Series, error) {
	var project wpdProject
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("parse digitized data: %w", err)
	}

	datasets := project.DatasetColl
	if len(datasets) == 0 {
		datasets = project.WPD.DataSeries
	}

	out := make([]Series, 0, len(datasets))
	for _, ds := range datasets {
		type pt struct{ x, y float64 }
		pts := make([]pt, 0, len(ds.Data))
		for i, d := range ds.Data {
			if len(d.Value) < 2 {
				return nil, fmt.Errorf("dataset %s point %d: expected [x, y], got %v", ds.Name, i, d.Value)
			}
			pts = append(pts, pt{d.Value[0], d.Value[1]})
		}
		sort.Slice(pts, func(i, j int) bool { return pts[i].x < pts[j].x })

		s := Series{Name: ds.Name, X: make([]float64, len(pts)), Y: make([]float64, len(pts))}
		for i, p := range pts {
			s.X[i], s.Y[i] = p.x, p.y
		}
		out = append(out, s)
	}
	return out, nil
}
