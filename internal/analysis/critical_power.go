package analysis

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// FitMethod tags how an eFTP estimate was produced.
type FitMethod int

const (
	// FitNone means no estimate could be produced.
	FitNone FitMethod = iota
	// FitMorton3P is an accepted fit of Morton's 3-parameter model.
	FitMorton3P
	// Fit20MinPercent is the 95%-of-best-20-minute-power fallback.
	Fit20MinPercent
)

// String returns the persisted identifier for the fit method.
func (m FitMethod) String() string {
	switch m {
	case FitMorton3P:
		return "morton_3p"
	case Fit20MinPercent:
		return "20min_95pct"
	default:
		return "none"
	}
}

// PowerPoint is one (effort duration, best watts) observation.
type PowerPoint struct {
	DurationS float64
	Watts     float64
}

// PowerCurveResult is the power-duration model summary.
type PowerCurveResult struct {
	EFTP   *int // estimated FTP, watts
	WPrime *int // anaerobic work capacity, joules
	Method FitMethod
	Points []PowerPoint
}

// Fit acceptance and model bounds, mirroring physiological plausibility:
// CP in watts, W' in joules, tau a small negative time shift in seconds.
const (
	fitMinPoints     = 3
	fitAcceptR2      = 0.95
	fitMaxIterations = 200
)

var (
	fitLower = [3]float64{50, 1000, -60}
	fitUpper = [3]float64{500, 50000, 0}
)

// EstimateFTP fits Morton's 3-parameter critical power model
// P(t) = CP + W'/(t - tau) to the given observations and falls back to 95%
// of the best 20-minute power when the fit is rejected or unattempted.
// It always returns a result; optimizer failure is never surfaced as an
// error. Mismatched input lengths are a caller bug and panic.
func EstimateFTP(durations, powers []float64, best20Min *float64) PowerCurveResult {
	if len(durations) != len(powers) {
		panic("analysis: durations and powers must have equal length")
	}

	points := make([]PowerPoint, len(durations))
	for i := range durations {
		points[i] = PowerPoint{DurationS: durations[i], Watts: powers[i]}
	}
	result := PowerCurveResult{Method: FitNone, Points: points}

	if len(durations) >= fitMinPoints {
		if fit, ok := fitMorton3P(durations, powers); ok && fit.rSquared > fitAcceptR2 {
			eftp := int(math.Round(fit.cp))
			wPrime := int(math.Round(fit.wPrime))
			result.EFTP = &eftp
			result.WPrime = &wPrime
			result.Method = FitMorton3P
			return result
		}
	}

	if best20Min != nil && *best20Min > 0 {
		eftp := int(math.Round(*best20Min * 0.95))
		result.EFTP = &eftp
		result.Method = Fit20MinPercent
	}

	return result
}

type morton3PFit struct {
	cp       float64
	wPrime   float64
	tau      float64
	rSquared float64
}

// fitMorton3P runs a bounded Levenberg-Marquardt least-squares fit. The
// reported ok is false on any numerical failure; the caller treats that
// the same as a rejected fit.
func fitMorton3P(durations, powers []float64) (morton3PFit, bool) {
	n := len(durations)

	minPower := powers[0]
	for _, p := range powers[1:] {
		if p < minPower {
			minPower = p
		}
	}

	// CP should sit below the longest sustainable observation.
	params := clampParams([3]float64{minPower * 0.9, 20000, -5})

	residual := func(p [3]float64) (float64, bool) {
		var sse float64
		for i := 0; i < n; i++ {
			denom := durations[i] - p[2]
			if denom <= 0 {
				return 0, false
			}
			r := powers[i] - (p[0] + p[1]/denom)
			sse += r * r
		}
		return sse, !math.IsNaN(sse) && !math.IsInf(sse, 0)
	}

	sse, ok := residual(params)
	if !ok {
		return morton3PFit{}, false
	}

	lambda := 1e-3
	jac := mat.NewDense(n, 3, nil)
	res := mat.NewVecDense(n, nil)

	for iter := 0; iter < fitMaxIterations; iter++ {
		for i := 0; i < n; i++ {
			denom := durations[i] - params[2]
			model := params[0] + params[1]/denom
			res.SetVec(i, powers[i]-model)
			jac.Set(i, 0, 1)
			jac.Set(i, 1, 1/denom)
			jac.Set(i, 2, params[1]/(denom*denom))
		}

		var jtj mat.Dense
		jtj.Mul(jac.T(), jac)
		for k := 0; k < 3; k++ {
			jtj.Set(k, k, jtj.At(k, k)*(1+lambda))
		}

		var jtr mat.VecDense
		jtr.MulVec(jac.T(), res)

		var step mat.VecDense
		if err := step.SolveVec(&jtj, &jtr); err != nil {
			lambda *= 10
			if lambda > 1e12 {
				break
			}
			continue
		}

		candidate := clampParams([3]float64{
			params[0] + step.AtVec(0),
			params[1] + step.AtVec(1),
			params[2] + step.AtVec(2),
		})

		candSSE, ok := residual(candidate)
		if ok && candSSE < sse {
			improved := sse - candSSE
			params = candidate
			sse = candSSE
			lambda = math.Max(lambda/10, 1e-12)
			if improved < 1e-10*(sse+1e-10) {
				break
			}
		} else {
			lambda *= 10
			if lambda > 1e12 {
				break
			}
		}
	}

	predicted := make([]float64, n)
	for i := 0; i < n; i++ {
		predicted[i] = params[0] + params[1]/(durations[i]-params[2])
	}
	r2 := stat.RSquaredFrom(predicted, powers, nil)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		return morton3PFit{}, false
	}

	return morton3PFit{
		cp:       params[0],
		wPrime:   params[1],
		tau:      params[2],
		rSquared: r2,
	}, true
}

func clampParams(p [3]float64) [3]float64 {
	for k := 0; k < 3; k++ {
		if p[k] < fitLower[k] || math.IsNaN(p[k]) {
			p[k] = fitLower[k]
		}
		if p[k] > fitUpper[k] {
			p[k] = fitUpper[k]
		}
	}
	return p
}
