package regress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormula(t *testing.T) {
	f, err := ParseFormula("petal_length ~ sepal_length + sepal_width")
	require.NoError(t, err)
	assert.Equal(t, "petal_length", f.Response)
	assert.Equal(t, []string{"sepal_length", "sepal_width"}, f.Predictors)
	assert.Equal(t, "petal_length ~ sepal_length + sepal_width", f.String())
}

func TestParseFormulaSinglePredictor(t *testing.T) {
	f, err := ParseFormula("petal_width~petal_length")
	require.NoError(t, err)
	assert.Equal(t, []string{"petal_length"}, f.Predictors)
}

func TestParseFormulaErrors(t *testing.T) {
	cases := []string{
		"",
		"petal_length",
		"a ~ b ~ c",
		" ~ b",
		"a ~ ",
		"a ~ b + ",
		"a ~ b + b",
		"a ~ a",
	}
	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			_, err := ParseFormula(s)
			require.Error(t, err, s)
		})
	}
}
