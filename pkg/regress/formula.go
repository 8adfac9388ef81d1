package regress

import (
	"strings"

	"github.com/pkg/errors"
)

// Formula names the response and predictor columns of a regression, parsed
// from the usual "response ~ predictor1 + predictor2" notation.
type Formula struct {
	Response   string
	Predictors []string
}

// ParseFormula parses a model formula string. The grammar is a single
// response, a tilde, and one or more predictors joined by plus signs.
func ParseFormula(s string) (Formula, error) {
	parts := strings.Split(s, "~")
	if len(parts) != 2 {
		return Formula{}, errors.Errorf("formula %q: want exactly one ~", s)
	}
	resp := strings.TrimSpace(parts[0])
	if resp == "" {
		return Formula{}, errors.Errorf("formula %q: empty response", s)
	}
	var preds []string
	for _, p := range strings.Split(parts[1], "+") {
		p = strings.TrimSpace(p)
		if p == "" {
			return Formula{}, errors.Errorf("formula %q: empty predictor term", s)
		}
		if p == resp {
			return Formula{}, errors.Errorf("formula %q: response %q also appears as predictor", s, resp)
		}
		for _, seen := range preds {
			if p == seen {
				return Formula{}, errors.Errorf("formula %q: duplicate predictor %q", s, p)
			}
		}
		preds = append(preds, p)
	}
	return Formula{Response: resp, Predictors: preds}, nil
}

func (f Formula) String() string {
	return f.Response + " ~ " + strings.Join(f.Predictors, " + ")
}
