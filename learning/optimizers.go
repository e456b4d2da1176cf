package learning

import "math"

// SGD is stochastic gradient descent with optional momentum.
type SGD struct {
	params []*Param
	h      HyperParameters
	buf    [][]float64
}

// NewSGD binds an SGD optimizer to params.
func NewSGD(params []*Param, h HyperParameters) (*SGD, error) {
	h = h.Defaults()
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &SGD{params: params, h: h, buf: moments(params)}, nil
}

// MustNewSGD is NewSGD which panics on invalid hyperparameters.
func MustNewSGD(params []*Param, h HyperParameters) *SGD {
	o, err := NewSGD(params, h)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// ZeroGrad implements Optimizer.
func (o *SGD) ZeroGrad() { ZeroGrads(o.params) }

// Step implements Optimizer.
func (o *SGD) Step() {
	for n, p := range o.params {
		value, grad := p.Data()
		buf := o.buf[n]
		for i := range value {
			g := grad[i] + o.h.WeightDecay*value[i]
			if o.h.Momentum > 0 {
				buf[i] = o.h.Momentum*buf[i] + g
				g = buf[i]
			}
			value[i] -= o.h.LearningRate * g
		}
	}
}

// Adam is the adaptive moment estimation optimizer.
type Adam struct {
	params []*Param
	h      HyperParameters
	m, v   [][]float64
	t      int
}

// NewAdam binds an Adam optimizer to params.
func NewAdam(params []*Param, h HyperParameters) (*Adam, error) {
	h = h.Defaults()
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &Adam{params: params, h: h, m: moments(params), v: moments(params)}, nil
}

// MustNewAdam is NewAdam which panics on invalid hyperparameters.
func MustNewAdam(params []*Param, h HyperParameters) *Adam {
	o, err := NewAdam(params, h)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// ZeroGrad implements Optimizer.
func (o *Adam) ZeroGrad() { ZeroGrads(o.params) }

// Step implements Optimizer.
func (o *Adam) Step() {
	o.t++
	c1 := 1 - math.Pow(o.h.Beta1, float64(o.t))
	c2 := 1 - math.Pow(o.h.Beta2, float64(o.t))
	for n, p := range o.params {
		value, grad := p.Data()
		m, v := o.m[n], o.v[n]
		for i := range value {
			g := grad[i] + o.h.WeightDecay*value[i]
			m[i] = o.h.Beta1*m[i] + (1-o.h.Beta1)*g
			v[i] = o.h.Beta2*v[i] + (1-o.h.Beta2)*g*g
			value[i] -= o.h.LearningRate * (m[i] / c1) / (math.Sqrt(v[i]/c2) + o.h.Epsilon)
		}
	}
}

// RMSprop scales each step by a moving average of squared gradients.
// It carries no momentum term.
type RMSprop struct {
	params []*Param
	h      HyperParameters
	sq     [][]float64
}

// NewRMSprop binds an RMSprop optimizer to params.
func NewRMSprop(params []*Param, h HyperParameters) (*RMSprop, error) {
	h = h.Defaults()
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &RMSprop{params: params, h: h, sq: moments(params)}, nil
}

// MustNewRMSprop is NewRMSprop which panics on invalid hyperparameters.
func MustNewRMSprop(params []*Param, h HyperParameters) *RMSprop {
	o, err := NewRMSprop(params, h)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// ZeroGrad implements Optimizer.
func (o *RMSprop) ZeroGrad() { ZeroGrads(o.params) }

// Step implements Optimizer.
func (o *RMSprop) Step() {
	for n, p := range o.params {
		value, grad := p.Data()
		sq := o.sq[n]
		for i := range value {
			g := grad[i] + o.h.WeightDecay*value[i]
			sq[i] = o.h.Alpha*sq[i] + (1-o.h.Alpha)*g*g
			value[i] -= o.h.LearningRate * g / (math.Sqrt(sq[i]) + o.h.Epsilon)
		}
	}
}
