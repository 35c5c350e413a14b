package calculator

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// 求解方法
type Method string

const (
	MethodErf    Method = "erf"    // 误差函数解
	MethodInfSum Method = "infsum" // 级数解
)

const (
	DefaultInfinity = 100
	DefaultPoints   = 100
)

// Options 每次计算显式传入的数值配置
type Options struct {
	Method     Method
	CenterData bool // 拟合时测量位置是否需要平移到以块中心为原点
	Infinity   int  // 级数解截断项数
	Points     int  // 不拟合时生成的点数
}

func DefaultOptions() Options {
	return Options{
		Method:     MethodErf,
		CenterData: true,
		Infinity:   DefaultInfinity,
		Points:     DefaultPoints,
	}
}

func (o Options) validate() error {
	if o.Method != MethodErf && o.Method != MethodInfSum {
		return fmt.Errorf("%w: method must be %q or %q, got %q", ErrInvalidConfig, MethodErf, MethodInfSum, o.Method)
	}
	if o.Points < 2 {
		return fmt.Errorf("%w: points must be at least 2, got %d", ErrInvalidConfig, o.Points)
	}
	if o.Method == MethodInfSum && o.Infinity < 1 {
		return fmt.Errorf("%w: infinity must be positive, got %d", ErrInvalidConfig, o.Infinity)
	}
	return nil
}

// LoadOptions 从配置文件的 [calculator] 段读取，缺省时使用默认值
func LoadOptions(file *ini.File) Options {
	def := DefaultOptions()
	section := file.Section("calculator")
	return Options{
		Method:     Method(section.Key("Method").MustString(string(def.Method))),
		CenterData: section.Key("CenterData").MustBool(def.CenterData),
		Infinity:   section.Key("Infinity").MustInt(def.Infinity),
		Points:     section.Key("Points").MustInt(def.Points),
	}
}
