package model

// 前后端通信消息类型
// 回复的类型为请求类型加 ResultSuffix，出错时为 TypeError

const (
	TypeHello              = "hello"
	TypeError              = "error"
	TypeDiffusion1D        = "diffusion1d"
	TypeResidual1D         = "residual1d"
	TypeDiffusion3D        = "diffusion3d"
	TypeWholeBlock         = "wholeblock"
	TypeWholeBlockResidual = "wholeblock_residual"
	TypeArrhenius          = "arrhenius"
	TypeSweep              = "sweep"

	ResultSuffix = "_result"
)

// ResultType 请求类型对应的回复类型
func ResultType(t string) string {
	return t + ResultSuffix
}
