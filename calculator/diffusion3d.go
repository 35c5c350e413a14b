package calculator

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/whtowbin/Pynams/field"
)

// 矩形平行六面体内的三维扩散（不做路径积分）
// 假设三个方向的扩散相互独立，三维解为三个一维解的乘积

// Result3D 完整浓度场、过中心的三条切片剖面及其位置（0 到边长，微米）
type Result3D struct {
	Field          *field.ArrField
	Slices         [3][]float64
	SlicePositions [3][]float64
}

type boundary3D struct {
	scale    float64 // 初始值大于 1 时的缩放系数
	initial  [3]float64
	final    [3]float64
	minimum  float64
	goingOut bool
}

// newBoundary3D 先除以缩放系数，再判断扩散方向
func newBoundary3D(initial, final [3]float64) boundary3D {
	b := boundary3D{scale: 1, goingOut: true}
	maxInitial := floats.Max(initial[:])
	if maxInitial > 1 {
		b.scale = maxInitial
	}
	for k := 0; k < 3; k++ {
		b.initial[k] = initial[k] / b.scale
		b.final[k] = final[k] / b.scale
		if b.initial[k] < b.final[k] {
			b.goingOut = false
		}
	}
	b.minimum = floats.Min(append(b.initial[:], b.final[:]...))
	return b
}

// axisParams 第 k 个方向的一维参数，向内扩散时交换两端按向外扩散计算
func (b boundary3D) axisParams(p *Parameters, k int, microns, log10D, seconds float64) *Parameters {
	initial, final := b.initial[k], b.final[k]
	if !b.goingOut {
		initial, final = final, initial
	}
	vD, _ := p.Vary(DiffusivityOf(k))
	vInit, _ := p.Vary(InitialValueOf(k))
	vFin, _ := p.Vary(FinalValueOf(k))
	return Params1D(microns, log10D, seconds, initial, final, vD, vInit, vFin)
}

// finish 方向修正，最后乘回缩放系数
func (b boundary3D) finish(f *field.ArrField) {
	if !b.goingOut {
		f.Apply(func(v float64) float64 {
			return (1 - v) + b.minimum
		})
	}
	if b.scale != 1 {
		f.Apply(func(v float64) float64 {
			return v * b.scale
		})
	}
}

func read3D(p *Parameters) (lengths, log10D [3]float64, seconds float64, initial, final [3]float64, err error) {
	for k := 0; k < 3; k++ {
		if lengths[k], err = p.Value(LengthOf(k)); err != nil {
			return
		}
		if log10D[k], err = p.Value(DiffusivityOf(k)); err != nil {
			return
		}
		if initial[k], err = p.Value(InitialValueOf(k)); err != nil {
			return
		}
		if final[k], err = p.Value(FinalValueOf(k)); err != nil {
			return
		}
	}
	seconds, err = p.Value(Time)
	return
}

// axisProfiles 三个方向的一维剖面
func axisProfiles(p *Parameters, opt Options) ([3]Profile, boundary3D, [3]float64, error) {
	var profiles [3]Profile
	lengths, log10D, seconds, initial, final, err := read3D(p)
	if err != nil {
		return profiles, boundary3D{}, lengths, err
	}
	if seconds < 0 {
		return profiles, boundary3D{}, lengths, fmt.Errorf("%w: negative time %g s", ErrInvalidInput, seconds)
	}

	b := newBoundary3D(initial, final)
	for k := 0; k < 3; k++ {
		profiles[k], err = Diffusion1D(b.axisParams(p, k, lengths[k], log10D[k], seconds), opt)
		if err != nil {
			return profiles, b, lengths, err
		}
	}
	return profiles, b, lengths, nil
}

// Diffusion3D 生成 opt.Points³ 的浓度场
func Diffusion3D(p *Parameters, opt Options) (Result3D, error) {
	if err := opt.validate(); err != nil {
		return Result3D{}, err
	}
	profiles, b, lengths, err := axisProfiles(p, opt)
	if err != nil {
		return Result3D{}, err
	}

	f := field.Outer(profiles[0].Y, profiles[1].Y, profiles[2].Y)
	b.finish(f)

	mid := opt.Points / 2
	res := Result3D{
		Field: f,
		Slices: [3][]float64{
			f.Line(field.AxisX, 0, mid, mid),
			f.Line(field.AxisY, mid, 0, mid),
			f.Line(field.AxisZ, mid, mid, 0),
		},
		SlicePositions: edgePositions(lengths, opt.Points),
	}

	log.WithFields(log.Fields{
		"points":   opt.Points,
		"scale":    b.scale,
		"goingOut": b.goingOut,
	}).Debug("3D field")
	return res, nil
}

// edgePositions 每个方向 0 到边长的等距位置
func edgePositions(lengths [3]float64, points int) [3][]float64 {
	var positions [3][]float64
	for k := 0; k < 3; k++ {
		positions[k] = linspace(points, 0, lengths[k])
	}
	return positions
}

// Residual3D 只校验数据形状，非路径积分模型的残差定义尚未确定
// 扩展点: 切片残差可以像 WholeBlockResidual 一样取最近的网格点
func Residual3D(p *Parameters, data [3]Data, opt Options) ([]float64, error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	for k := 0; k < 3; k++ {
		if err := data[k].validate(); err != nil {
			return nil, fmt.Errorf("direction %s: %w", faceSuffix[k], err)
		}
	}
	return nil, ErrResidualUndefined
}

// NonPathIntegrated3D 最简单的调用方式
func NonPathIntegrated3D(microns, log10D [3]float64, seconds, initial, final float64, opt Options) (Result3D, error) {
	return Diffusion3D(Params3D(microns, log10D, seconds, initial, final, [3]bool{}, false, false), opt)
}
