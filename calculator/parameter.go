package calculator

import (
	"fmt"
)

// 一维模型参数名
const (
	Length           = "length"            // 长度, 微米
	DiffusivityLog10 = "diffusivity_log10" // log10(D), D 单位 m²/s
	Time             = "time"              // 时间, 秒
	InitialValue     = "initial_value"     // 初始值
	FinalValue       = "final_value"       // 最终值
)

// 三维模型各方向的后缀
var (
	axisSuffix = [3]string{"x", "y", "z"}
	faceSuffix = [3]string{"a", "b", "c"}
)

// 三维模型参数名
func LengthOf(axis int) string { return Length + "_" + axisSuffix[axis] }
func DiffusivityOf(axis int) string { return DiffusivityLog10 + "_" + axisSuffix[axis] }
func InitialValueOf(face int) string { return InitialValue + "_" + faceSuffix[face] }
func FinalValueOf(face int) string { return FinalValue + "_" + faceSuffix[face] }

// Param 单个参数，Vary 表示拟合时是否允许优化器修改
type Param struct {
	Name  string
	Value float64
	Vary  bool
}

// Parameters 有序的参数集合
// 外部优化器在两次残差计算之间修改可变参数，一次计算内部只读
type Parameters struct {
	names []string
	items map[string]*Param
}

func NewParameters() *Parameters {
	return &Parameters{
		items: make(map[string]*Param),
	}
}

// Add 已存在的参数原位替换，保持原有顺序
func (p *Parameters) Add(name string, value float64, vary bool) *Parameters {
	if item, ok := p.items[name]; ok {
		item.Value = value
		item.Vary = vary
		return p
	}
	p.names = append(p.names, name)
	p.items[name] = &Param{Name: name, Value: value, Vary: vary}
	return p
}

func (p *Parameters) Get(name string) (Param, error) {
	item, ok := p.items[name]
	if !ok {
		return Param{}, fmt.Errorf("%w: missing parameter %q", ErrInvalidInput, name)
	}
	return *item, nil
}

func (p *Parameters) Value(name string) (float64, error) {
	item, err := p.Get(name)
	return item.Value, err
}

func (p *Parameters) Vary(name string) (bool, error) {
	item, err := p.Get(name)
	return item.Vary, err
}

func (p *Parameters) Names() []string {
	return append([]string(nil), p.names...)
}

func (p *Parameters) Len() int {
	return len(p.names)
}

func (p *Parameters) Clone() *Parameters {
	c := NewParameters()
	for _, name := range p.names {
		item := p.items[name]
		c.Add(name, item.Value, item.Vary)
	}
	return c
}

// Free 可变参数名，按添加顺序
func (p *Parameters) Free() []string {
	var free []string
	for _, name := range p.names {
		if p.items[name].Vary {
			free = append(free, name)
		}
	}
	return free
}

func (p *Parameters) FreeValues() []float64 {
	free := p.Free()
	x := make([]float64, len(free))
	for i, name := range free {
		x[i] = p.items[name].Value
	}
	return x
}

// SetFree 按 Free 的顺序写入可变参数
func (p *Parameters) SetFree(x []float64) error {
	free := p.Free()
	if len(x) != len(free) {
		return fmt.Errorf("%w: %d values for %d free parameters", ErrShapeMismatch, len(x), len(free))
	}
	for i, name := range free {
		p.items[name].Value = x[i]
	}
	return nil
}

// values 一次性读取多个参数
func (p *Parameters) values(names ...string) ([]float64, error) {
	res := make([]float64, len(names))
	for i, name := range names {
		v, err := p.Value(name)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

// Params1D 一维扩散参数
func Params1D(microns, log10D, seconds, init, fin float64, vD, vInit, vFin bool) *Parameters {
	return NewParameters().
		Add(Length, microns, false).
		Add(DiffusivityLog10, log10D, vD).
		Add(Time, seconds, false).
		Add(InitialValue, init, vInit).
		Add(FinalValue, fin, vFin)
}

// Params3D 三维扩散参数，三个方向的初始值、最终值分别对应块的 a, b, c 三组面
func Params3D(microns [3]float64, log10D [3]float64, seconds, initial, final float64, vD [3]bool, vInit, vFin bool) *Parameters {
	p := NewParameters()
	for k := 0; k < 3; k++ {
		p.Add(LengthOf(k), microns[k], false)
	}
	for k := 0; k < 3; k++ {
		p.Add(DiffusivityOf(k), log10D[k], vD[k])
	}
	p.Add(Time, seconds, false)
	for k := 0; k < 3; k++ {
		p.Add(InitialValueOf(k), initial, vInit)
	}
	for k := 0; k < 3; k++ {
		p.Add(FinalValueOf(k), final, vFin)
	}
	return p
}
