package openmht

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// TrackStatus is the outcome of a KalmanTrack update.
type TrackStatus int

const (
	// TrackAlive means the hypothesis survives the update.
	TrackAlive TrackStatus = iota
	// TrackRejected means the detection fell outside the gate. The filter
	// state and the track score are untouched.
	TrackRejected
	// TrackCull means the hypothesis must be deleted: the consecutive-miss
	// limit was exceeded, or the innovation covariance went singular.
	TrackCull
)

// KalmanTrack is the per-hypothesis motion filter: a scalar-gated Kalman
// filter with identity dynamics over R^d. It carries the hypothesis's running
// track score (cumulative log-likelihood) and its consecutive-miss counter.
type KalmanTrack struct {
	dims int

	xhat *mat.VecDense // posterior mean
	p    *mat.Dense    // posterior covariance, initialised to I

	q         float64 // process noise scale, Q = qI
	r         float64 // measurement noise scalar
	k         float64 // initial gain seed; stored only, Update forms its gain from sigma and r
	imageArea float64
	gate      float64 // squared-Mahalanobis gating threshold
	missLimit int

	missedDetectionScore float64
	score                float64
	missStreak           int
}

// NewKalmanTrack seeds a filter from an initial observation. The track score
// starts at the missed-detection score ln(1 - 1/v).
func NewKalmanTrack(z Coordinate, params Params) *KalmanTrack {
	dims := len(z)
	v := float64(params.V)

	xhat := mat.NewVecDense(dims, nil)
	for i, c := range z {
		xhat.SetVec(i, c)
	}
	p := mat.NewDense(dims, dims, nil)
	for i := 0; i < dims; i++ {
		p.Set(i, i, 1.0)
	}

	missed := math.Log(1.0 - 1.0/v)
	return &KalmanTrack{
		dims:                 dims,
		xhat:                 xhat,
		p:                    p,
		q:                    params.Q,
		r:                    params.R,
		k:                    params.K,
		imageArea:            v,
		gate:                 params.DTh,
		missLimit:            params.NMiss,
		missedDetectionScore: missed,
		score:                missed,
	}
}

// Clone returns an independent copy of the filter for branching a hypothesis.
func (kt *KalmanTrack) Clone() *KalmanTrack {
	c := *kt
	c.xhat = mat.VecDenseCopyOf(kt.xhat)
	c.p = mat.DenseCopyOf(kt.p)
	return &c
}

// Score returns the cumulative track score.
func (kt *KalmanTrack) Score() float64 { return kt.score }

// MissStreak returns the number of consecutive trailing missed detections.
func (kt *KalmanTrack) MissStreak() int { return kt.missStreak }

// Dims returns the filter's dimensionality.
func (kt *KalmanTrack) Dims() int { return kt.dims }

// MissedDetectionScore returns the constant ln(1 - 1/v) added on every miss.
func (kt *KalmanTrack) MissedDetectionScore() float64 { return kt.missedDetectionScore }

// Mean returns the posterior mean as a Coordinate.
func (kt *KalmanTrack) Mean() Coordinate {
	out := make(Coordinate, kt.dims)
	for i := 0; i < kt.dims; i++ {
		out[i] = kt.xhat.AtVec(i)
	}
	return out
}

// Update advances the filter by one frame. A nil observation is a missed
// detection: the missed-detection score is added and the miss streak grows,
// reporting TrackCull once the streak exceeds the miss limit. A detection
// first passes the gate on squared Mahalanobis distance; outside the gate the
// update reports TrackRejected and neither state nor score changes. Inside the
// gate the motion score is added and the scalar-gain measurement update runs.
func (kt *KalmanTrack) Update(z Coordinate) TrackStatus {
	if z == nil {
		kt.score += kt.missedDetectionScore
		kt.missStreak++
		if kt.missStreak > kt.missLimit {
			return TrackCull
		}
		return TrackAlive
	}

	// Time update: identity dynamics, sigma = P + Q.
	sigma := mat.NewDense(kt.dims, kt.dims, nil)
	sigma.Copy(kt.p)
	for i := 0; i < kt.dims; i++ {
		sigma.Set(i, i, sigma.At(i, i)+kt.q)
	}

	det := mat.Det(sigma)
	if det <= 0 || math.IsNaN(det) {
		return TrackCull
	}
	var sigmaInv mat.Dense
	if err := sigmaInv.Inverse(sigma); err != nil {
		return TrackCull
	}

	diff := mat.NewVecDense(kt.dims, nil)
	for i, c := range z {
		diff.SetVec(i, kt.xhat.AtVec(i)-c)
	}
	var tmp mat.VecDense
	tmp.MulVec(&sigmaInv, diff)
	dSquared := mat.Dot(diff, &tmp)

	// Gating
	if dSquared > kt.gate {
		return TrackRejected
	}

	kt.score += math.Log(kt.imageArea/(2.0*math.Pi)) - 0.5*math.Log(det) - dSquared/2.0

	// Measurement update with the entrywise gain K = sigma / (sigma + R).
	// The gain is formed entrywise but applied with true matrix products,
	// matching the reference update shape.
	var denom mat.Dense
	denom.Apply(func(_, _ int, v float64) float64 { return v + kt.r }, sigma)
	var gain mat.Dense
	gain.DivElem(sigma, &denom)

	var innovation mat.VecDense
	innovation.ScaleVec(-1, diff) // z - mu
	var correction mat.VecDense
	correction.MulVec(&gain, &innovation)
	kt.xhat.AddVec(kt.xhat, &correction)

	eye := mat.NewDense(kt.dims, kt.dims, nil)
	for i := 0; i < kt.dims; i++ {
		eye.Set(i, i, 1.0)
	}
	var iMinusK mat.Dense
	iMinusK.Sub(eye, &gain)
	var newP mat.Dense
	newP.Mul(&iMinusK, sigma)
	kt.p.Copy(&newP)

	kt.missStreak = 0
	return TrackAlive
}
