package calculator

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// ResidualFunc 给定参数返回残差向量
type ResidualFunc func(p *Parameters) ([]float64, error)

// Objective 把参数集合和残差函数包装成外部非线性最小二乘优化器使用的形式:
// x 为可变参数（按 Parameters.Free 的顺序），输出为残差向量。
// 每次计算都在参数的拷贝上进行，可以并发调用。
type Objective struct {
	params   *Parameters
	residual ResidualFunc
	m        int
}

// NewObjective 先在初始参数上计算一次，确定残差长度
func NewObjective(p *Parameters, f ResidualFunc) (*Objective, error) {
	base := p.Clone()
	r, err := f(base.Clone())
	if err != nil {
		return nil, err
	}
	return &Objective{params: base, residual: f, m: len(r)}, nil
}

func Objective1D(p *Parameters, data Data, opt Options) (*Objective, error) {
	return NewObjective(p, func(p *Parameters) ([]float64, error) {
		return Residual1D(p, data, opt)
	})
}

func ObjectiveWholeBlock(p *Parameters, rays RayPaths, data [3]Data, opt Options) (*Objective, error) {
	return NewObjective(p, func(p *Parameters) ([]float64, error) {
		return WholeBlockResidual(p, rays, data, opt)
	})
}

// X0 可变参数的初始值
func (o *Objective) X0() []float64 {
	return o.params.FreeValues()
}

// Dim 可变参数个数
func (o *Objective) Dim() int {
	return len(o.params.Free())
}

// Len 残差个数
func (o *Objective) Len() int {
	return o.m
}

// Params x 对应的完整参数集合
func (o *Objective) Params(x []float64) (*Parameters, error) {
	p := o.params.Clone()
	if err := p.SetFree(x); err != nil {
		return nil, err
	}
	return p, nil
}

func (o *Objective) Eval(dst, x []float64) error {
	if len(dst) != o.m {
		return fmt.Errorf("%w: dst has %d values, residual has %d", ErrShapeMismatch, len(dst), o.m)
	}
	p, err := o.Params(x)
	if err != nil {
		return err
	}
	r, err := o.residual(p)
	if err != nil {
		return err
	}
	if len(r) != o.m {
		return fmt.Errorf("%w: residual length changed from %d to %d", ErrShapeMismatch, o.m, len(r))
	}
	copy(dst, r)
	return nil
}

// Jacobian 中心差分数值雅可比矩阵，dst 为 Len() x Dim()
func (o *Objective) Jacobian(dst *mat.Dense, x []float64) error {
	n := o.Dim()
	if n == 0 {
		return fmt.Errorf("%w: no free parameters", ErrInvalidConfig)
	}
	if len(x) != n {
		return fmt.Errorf("%w: %d values for %d free parameters", ErrShapeMismatch, len(x), n)
	}
	if r, c := dst.Dims(); r != o.m || c != n {
		return fmt.Errorf("%w: dst is %dx%d, jacobian is %dx%d", ErrShapeMismatch, r, c, o.m, n)
	}
	var (
		once     sync.Once
		firstErr error
	)
	fd.Jacobian(dst, func(y, x []float64) {
		if err := o.Eval(y, x); err != nil {
			once.Do(func() { firstErr = err })
		}
	}, x, &fd.JacobianSettings{
		Formula:    fd.Central,
		Concurrent: true,
	})
	return firstErr
}
