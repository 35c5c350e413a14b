package block

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/whtowbin/Pynams/calculator"
	"github.com/whtowbin/Pynams/model"
)

// 测量样品（矩形平行六面体）的描述

// 参数解释
// 1. 三条边 a, b, c 的长度，单位微米，分别对应 x, y, z 方向
// 2. 实验温度，摄氏度
// 3. 每个方向的 log10(D)，D 单位 m²/s
// 4. 初始值、最终值（归一化浓度）
// 5. 测量 a, b, c 三个方向剖面时的光路方向

const (
	DefaultInitial = 1.0
	DefaultFinal   = 0.0
)

// DefaultRayPaths a 方向剖面沿 b 测量，b、c 方向剖面沿 a 测量
var DefaultRayPaths = calculator.RayPaths{"b", "a", "a"}

type Block struct {
	Name        string
	Lengths     [3]float64 // 边长，微米
	Temperature float64    // 实验温度，摄氏度
	Time        float64    // 扩散时间，秒
	Log10D      [3]float64
	Initial     float64
	Final       float64
	RayPaths    calculator.RayPaths

	// 拟合时允许优化器修改的参数
	VaryD       [3]bool
	VaryInitial bool
	VaryFinal   bool
}

func NewBlock(name string, lengths [3]float64) *Block {
	b := Block{
		Name:     name,
		Lengths:  lengths,
		Initial:  DefaultInitial,
		Final:    DefaultFinal,
		RayPaths: DefaultRayPaths,
		VaryD:    [3]bool{true, true, true},
	}
	return &b
}

// FromRequest 根据前端传来的样品描述构建，未给出光路时使用默认光路
func FromRequest(req model.Block) *Block {
	b := NewBlock(req.Name, req.Lengths)
	b.Temperature = req.Temperature
	b.Time = req.Time
	b.Log10D = req.Log10D
	b.Initial = req.Initial
	b.Final = req.Final
	b.VaryD = req.VaryD
	b.VaryInitial = req.VaryInitial
	b.VaryFinal = req.VaryFinal
	if req.RayPaths != [3]string{} {
		b.RayPaths = calculator.RayPaths(req.RayPaths)
	}
	return b
}

func (b *Block) SetLog10D(log10D [3]float64) {
	b.Log10D = log10D
	log.WithFields(log.Fields{
		"block": b.Name,
		"x":     log10D[0],
		"y":     log10D[1],
		"z":     log10D[2],
	}).Info("设置扩散系数")
}

// SetIsotropic 三个方向使用同一个扩散系数
func (b *Block) SetIsotropic(log10D float64) {
	b.SetLog10D([3]float64{log10D, log10D, log10D})
}

func (b *Block) SetTime(seconds float64) {
	b.Time = seconds
	log.WithFields(log.Fields{
		"block":   b.Name,
		"seconds": seconds,
	}).Info("设置扩散时间")
}

func (b *Block) SetTemperature(celsius float64) {
	b.Temperature = celsius
	log.WithFields(log.Fields{
		"block":   b.Name,
		"celsius": celsius,
	}).Info("设置实验温度")
}

func (b *Block) SetBoundary(initial, final float64) {
	b.Initial = initial
	b.Final = final
	log.WithFields(log.Fields{
		"block":   b.Name,
		"initial": initial,
		"final":   final,
	}).Info("设置边界值")
}

func (b *Block) SetRayPaths(rays calculator.RayPaths) {
	b.RayPaths = rays
	log.WithFields(log.Fields{
		"block":    b.Name,
		"raypaths": rays,
	}).Info("设置光路")
}

// Params 三维模型使用的参数集合
func (b *Block) Params() *calculator.Parameters {
	return calculator.Params3D(b.Lengths, b.Log10D, b.Time, b.Initial, b.Final, b.VaryD, b.VaryInitial, b.VaryFinal)
}

// Update 把拟合得到的参数写回
func (b *Block) Update(p *calculator.Parameters) error {
	for k := 0; k < 3; k++ {
		v, err := p.Value(calculator.DiffusivityOf(k))
		if err != nil {
			return err
		}
		b.Log10D[k] = v
	}
	var err error
	if b.Time, err = p.Value(calculator.Time); err != nil {
		return err
	}
	if b.Initial, err = p.Value(calculator.InitialValueOf(0)); err != nil {
		return err
	}
	if b.Final, err = p.Value(calculator.FinalValueOf(0)); err != nil {
		return err
	}
	return nil
}

func (b *Block) WholeBlock(opt calculator.Options) (calculator.WholeBlockResult, error) {
	return calculator.WholeBlock(b.Params(), b.RayPaths, opt)
}

func (b *Block) Field(opt calculator.Options) (calculator.Result3D, error) {
	return calculator.Diffusion3D(b.Params(), opt)
}

func (b *Block) Objective(data [3]calculator.Data, opt calculator.Options) (*calculator.Objective, error) {
	return calculator.ObjectiveWholeBlock(b.Params(), b.RayPaths, data, opt)
}

func (b *Block) String() string {
	return fmt.Sprintf("%s %gx%gx%g µm @ %g°C", b.Name, b.Lengths[0], b.Lengths[1], b.Lengths[2], b.Temperature)
}
