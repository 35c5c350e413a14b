package calculator

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// 一维有限长度扩散（平板）
//
// 误差函数解，半宽 a，位置 x 以块中心为原点:
//
//	shape(x) = erf((a+x)/(2√(Dt))) + erf((a-x)/(2√(Dt))) - 1
//
// 级数解:
//
//	shape(x) = 4/π · Σ (-1)^n/(2n+1) · exp(-D(2n+1)²π²t/(2a)²) · cos((2n+1)πx/(2a))
//
// 两种解都按向外扩散计算，向内扩散时取 1 - shape，最后缩放到 [最小值, 溶解度] 区间

const micronsPerMeter = 1e6

// Profile 位置单位为微米
type Profile struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Data 测量数据，X 为微米
type Data struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

func (d Data) validate() error {
	if len(d.X) != len(d.Y) {
		return fmt.Errorf("%w: x has %d values, y has %d", ErrShapeMismatch, len(d.X), len(d.Y))
	}
	// 位置为 NaN 时最近点查找会静默落到第一个点
	for i, x := range d.X {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: position %d is not finite (%g)", ErrInvalidInput, i, x)
		}
	}
	return nil
}

// Result 不拟合时 Profile 有值，拟合时 Residual 有值
type Result struct {
	Profile  *Profile
	Residual []float64
}

type slab struct {
	a          float64 // 半宽, 米
	d          float64 // 扩散系数, m²/s
	t          float64 // 秒
	goingOut   bool
	solubility float64
	minimum    float64
}

func newSlab(p *Parameters) (slab, error) {
	v, err := p.values(Length, DiffusivityLog10, Time, InitialValue, FinalValue)
	if err != nil {
		return slab{}, err
	}
	microns, log10D, t, initial, final := v[0], v[1], v[2], v[3], v[4]
	if t < 0 {
		return slab{}, fmt.Errorf("%w: negative time %g s", ErrInvalidInput, t)
	}
	if microns <= 0 {
		return slab{}, fmt.Errorf("%w: length must be positive, got %g microns", ErrInvalidInput, microns)
	}

	s := slab{
		a: microns / micronsPerMeter / 2,
		d: math.Pow(10, log10D),
		t: t,
	}
	// 较大的一端作为溶解度边界
	if initial > final {
		s.goingOut = true
		s.solubility = initial
		s.minimum = final
	} else {
		s.solubility = final
		s.minimum = initial
	}
	return s, nil
}

// shape 向外扩散的无量纲剖面
func (s slab) shape(x []float64, opt Options) []float64 {
	if opt.Method == MethodInfSum {
		return s.shapeSum(x, opt.Infinity)
	}
	return s.shapeErf(x)
}

func (s slab) shapeErf(x []float64) []float64 {
	den := 2 * math.Sqrt(s.d*s.t)
	res := make([]float64, len(x))
	for i, xi := range x {
		res[i] = erfRatio(s.a+xi, den) + erfRatio(s.a-xi, den) - 1
	}
	return res
}

// erfRatio erf(num/den)，den 为 0 (t = 0) 时取 t→0⁺ 的极限
func erfRatio(num, den float64) float64 {
	if den == 0 {
		switch {
		case num > 0:
			return 1
		case num < 0:
			return -1
		default:
			return 0
		}
	}
	return math.Erf(num / den)
}

func (s slab) shapeSum(x []float64, infinity int) []float64 {
	twoA := 2 * s.a
	sum := make([]float64, len(x))
	for n := 0; n < infinity; n++ {
		m := float64(2*n + 1)
		sign := 1.0
		if n%2 == 1 {
			sign = -1.0
		}
		coef := sign / m * math.Exp(-s.d*m*m*math.Pi*math.Pi*s.t/(twoA*twoA))
		if coef == 0 {
			break
		}
		for i, xi := range x {
			sum[i] += coef * math.Cos(m*math.Pi*xi/twoA)
		}
	}
	floats.Scale(4/math.Pi, sum)
	return sum
}

// model 方向处理 + 缩放
func (s slab) model(x []float64, opt Options) []float64 {
	m := s.shape(x, opt)
	if !s.goingOut {
		for i := range m {
			m[i] = 1 - m[i]
		}
	}
	concentrationRange := s.solubility - s.minimum
	for i := range m {
		m[i] = m[i]*concentrationRange + s.minimum
	}
	return m
}

// Diffusion1D 生成 opt.Points 个点的剖面，位置为 [-a, a] 微米
func Diffusion1D(p *Parameters, opt Options) (Profile, error) {
	if err := opt.validate(); err != nil {
		return Profile{}, err
	}
	s, err := newSlab(p)
	if err != nil {
		return Profile{}, err
	}

	x := linspace(opt.Points, -s.a, s.a)
	y := s.model(x, opt)
	floats.Scale(micronsPerMeter, x)

	log.WithFields(log.Fields{
		"method":   opt.Method,
		"points":   opt.Points,
		"goingOut": s.goingOut,
	}).Debug("1D profile")
	return Profile{X: x, Y: y}, nil
}

// Residual1D 残差 model - data，顺序与数据一致
func Residual1D(p *Parameters, data Data, opt Options) ([]float64, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	if err := data.validate(); err != nil {
		return nil, err
	}
	s, err := newSlab(p)
	if err != nil {
		return nil, err
	}

	x := make([]float64, len(data.X))
	floats.ScaleTo(x, 1/micronsPerMeter, data.X)
	if opt.CenterData {
		floats.AddConst(-s.a, x)
	}
	m := s.model(x, opt)
	return floats.SubTo(m, m, data.Y), nil
}

// Evaluate1D data 为 nil 时生成剖面，否则返回残差
func Evaluate1D(p *Parameters, data *Data, opt Options) (Result, error) {
	if data == nil {
		profile, err := Diffusion1D(p, opt)
		if err != nil {
			return Result{}, err
		}
		return Result{Profile: &profile}, nil
	}
	residual, err := Residual1D(p, *data, opt)
	if err != nil {
		return Result{}, err
	}
	return Result{Residual: residual}, nil
}

// Profile1D 最简单的调用方式，init > fin 为向外扩散
func Profile1D(microns, log10D, seconds, init, fin float64, opt Options) (Profile, error) {
	return Diffusion1D(Params1D(microns, log10D, seconds, init, fin, false, false, false), opt)
}
