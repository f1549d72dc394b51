package tikz

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// A Style holds the drawing knobs that may be overridden from a YAML
// style file. Lengths are TikZ length expressions; colors are xcolor
// color names.
type Style struct {
	// MatchColor and InsertColor shade match and insert states by
	// entropy.
	MatchColor  string `yaml:"match-color"`
	InsertColor string `yaml:"insert-color"`

	// HDist and VDist are the horizontal and vertical distances
	// between neighboring states.
	HDist string `yaml:"hdist"`
	VDist string `yaml:"vdist"`

	// LineWidth is the base line width for transition arcs.
	LineWidth string `yaml:"line-width"`

	// FontPt is the base font size of the document in points.
	FontPt int `yaml:"font-pt"`
}

// DefaultStyle returns the style used when no style file is given.
func DefaultStyle() Style {
	return Style{
		MatchColor:  "orange",
		InsertColor: "green",
		HDist:       "1mm",
		VDist:       "1mm",
		LineWidth:   ".0125mm",
		FontPt:      10,
	}
}

// ReadStyle loads a Style in YAML form from path. Keys omitted from the
// file keep their default values.
func ReadStyle(path string) (Style, error) {
	style := DefaultStyle()
	bs, err := os.ReadFile(path)
	if err != nil {
		return style, err
	}
	if err := yaml.Unmarshal(bs, &style); err != nil {
		return style, fmt.Errorf("Error reading style '%s': %s", path, err)
	}
	return style, nil
}
