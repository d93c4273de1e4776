package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/model"
)

// ---------------------------------------------------------------------------
// RateSolver – effective annual rate from an irregular cash-flow schedule
// ---------------------------------------------------------------------------

const (
	// solveTolerance bounds |f(r)| for convergence and is also the cutoff
	// for bracket sign checks, so Newton and bisection agree on what counts
	// as a root.
	solveTolerance = 1e-9

	maxNewtonIterations = 50
	maxBisectIterations = 200

	newtonSeed = 0.1

	// A rate cannot be below -100%; 1000% is the practical upper bound.
	bracketLow  = -0.999
	bracketHigh = 10.0

	// Act/365 day count, per the regulatory APR methodology.
	daysPerYear = 365.0
)

// NonConvergenceError reports that no annual rate zeroes the net present
// value of the schedule within the solver's bracket and iteration budget.
// It is a terminal failure for the contract; the APR is never approximated.
type NonConvergenceError struct {
	Reason     string
	Iterations int
	Residual   float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("rate solver did not converge after %d iterations: %s (residual %g)",
		e.Iterations, e.Reason, e.Residual)
}

// RateSolver computes the annual effective rate that zeroes the net present
// value of a cash-flow schedule:
//
//	f(r) = Σ CF_k · (1+r)^(−t_k)
//
// with t_k the Act/365 year fraction of flow k from the first flow. Because
// t_k is expressed in years, the root r is the annual rate directly and no
// periodic-to-annual conversion step is needed.
type RateSolver struct{}

// NewRateSolver returns a new solver instance.
func NewRateSolver() *RateSolver {
	return &RateSolver{}
}

// Solve returns the annual effective rate as a non-negative percentage.
// The schedule is validated first; zero or same-sign flows are rejected with
// a *model.ValidationError before any iteration runs. Failure to find a root
// is a *NonConvergenceError.
func (s *RateSolver) Solve(flows []model.CashFlow) (decimal.Decimal, error) {
	if err := model.ValidateCashFlows(flows); err != nil {
		return decimal.Decimal{}, err
	}

	amounts := make([]float64, len(flows))
	times := make([]float64, len(flows))
	first := flows[0].Date
	for i, cf := range flows {
		amounts[i] = cf.Amount.InexactFloat64()
		times[i] = cf.Date.Sub(first).Hours() / 24.0 / daysPerYear
	}

	var (
		rate float64
		err  error
	)
	if len(flows) == 2 {
		rate, err = closedFormRate(amounts, times)
	} else {
		rate, err = newton(amounts, times)
		if err != nil {
			rate, err = bisect(amounts, times)
		}
	}
	if err != nil {
		return decimal.Decimal{}, err
	}

	// The effective cost of credit is reported as a non-negative
	// percentage; sub-zero roots clamp to zero.
	if rate < 0 {
		rate = 0
	}
	return decimal.NewFromFloat(rate * 100), nil
}

// closedFormRate handles the two-flow case directly:
//
//	CF_0 + CF_1·(1+r)^(−t_1) = 0  =>  r = (−CF_1/CF_0)^(1/t_1) − 1
func closedFormRate(amounts, times []float64) (float64, error) {
	t := times[1] - times[0]
	if t <= 0 {
		return 0, &NonConvergenceError{
			Reason: "degenerate two-flow schedule: no time elapses between flows",
		}
	}

	ratio := -amounts[1] / amounts[0]
	return math.Pow(ratio, 1.0/t) - 1.0, nil
}

// npv evaluates f(r).
func npv(amounts, times []float64, rate float64) float64 {
	var sum float64
	for i := range amounts {
		sum += amounts[i] * math.Pow(1.0+rate, -times[i])
	}
	return sum
}

// npvDerivative evaluates the analytic f'(r) = Σ CF_k·(−t_k)·(1+r)^(−t_k−1).
func npvDerivative(amounts, times []float64, rate float64) float64 {
	var sum float64
	for i := range amounts {
		sum += amounts[i] * (-times[i]) * math.Pow(1.0+rate, -times[i]-1.0)
	}
	return sum
}

// newton runs Newton–Raphson from the standard 10% seed. Any divergence
// (non-finite values, zero derivative, iterate leaving the bracket) or
// exhaustion of the iteration budget is an error; the caller falls back to
// bisection.
func newton(amounts, times []float64) (float64, error) {
	rate := newtonSeed
	for i := 0; i < maxNewtonIterations; i++ {
		f := npv(amounts, times, rate)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, &NonConvergenceError{Reason: "non-finite imbalance", Iterations: i}
		}
		if math.Abs(f) < solveTolerance {
			return rate, nil
		}

		d := npvDerivative(amounts, times, rate)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, &NonConvergenceError{Reason: "unusable derivative", Iterations: i, Residual: f}
		}

		next := rate - f/d
		if math.IsNaN(next) || next <= bracketLow || next > bracketHigh {
			return 0, &NonConvergenceError{Reason: "iterate left the bracket", Iterations: i, Residual: f}
		}
		rate = next
	}

	return 0, &NonConvergenceError{
		Reason:     "iteration budget exhausted",
		Iterations: maxNewtonIterations,
		Residual:   npv(amounts, times, rate),
	}
}

// bisect searches [bracketLow, bracketHigh]. Absence of a sign change across
// the bracket is a terminal NonConvergenceError, not an approximation.
func bisect(amounts, times []float64) (float64, error) {
	lo, hi := bracketLow, bracketHigh
	flo := npv(amounts, times, lo)
	fhi := npv(amounts, times, hi)

	if math.Abs(flo) < solveTolerance {
		return lo, nil
	}
	if math.Abs(fhi) < solveTolerance {
		return hi, nil
	}
	if (flo < 0) == (fhi < 0) {
		return 0, &NonConvergenceError{
			Reason:   fmt.Sprintf("no sign change in bracket [%g, %g]", bracketLow, bracketHigh),
			Residual: flo,
		}
	}

	for i := 0; i < maxBisectIterations; i++ {
		mid := (lo + hi) / 2
		fmid := npv(amounts, times, mid)
		if math.Abs(fmid) < solveTolerance {
			return mid, nil
		}
		if (flo < 0) == (fmid < 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}

	return 0, &NonConvergenceError{
		Reason:     "bisection budget exhausted",
		Iterations: maxBisectIterations,
		Residual:   npv(amounts, times, (lo+hi)/2),
	}
}
