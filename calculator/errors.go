package calculator

import "errors"

// 各模块在入口处检测到的错误，调用方用 errors.Is 判断类型
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrShapeMismatch  = errors.New("shape mismatch")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrLengthMismatch = errors.New("length mismatch")

	// 三维非路径积分模型的拟合残差尚未定义
	ErrResidualUndefined = errors.New("residual not defined for non-path-integrated 3D model")
)
