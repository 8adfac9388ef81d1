package posterior

import (
	"github.com/biagzi/week1-blog/pkg/stats"
)

// PredictiveCheck compares response vectors simulated from the fitted model
// against the observed response. If the model describes the data well, the
// simulated aggregates should sit close to the observed ones.
type PredictiveCheck struct {
	ObservedMean float64
	ObservedVar  float64
	// Mean over simulated vectors of each vector's mean / variance.
	SimulatedMean float64
	SimulatedVar  float64
}

// CheckPredictive aggregates simulated draws against the observed response.
func CheckPredictive(simulated [][]float64, observed []float64) PredictiveCheck {
	simMeans := make([]float64, len(simulated))
	simVars := make([]float64, len(simulated))
	for i, sim := range simulated {
		simMeans[i] = stats.Mean(sim)
		simVars[i] = stats.Variance(sim)
	}
	return PredictiveCheck{
		ObservedMean:  stats.Mean(observed),
		ObservedVar:   stats.Variance(observed),
		SimulatedMean: stats.Mean(simMeans),
		SimulatedVar:  stats.Mean(simVars),
	}
}
