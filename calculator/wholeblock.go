package calculator

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/whtowbin/Pynams/field"
)

// 整块（路径积分）模型
// 测得的信号是浓度沿光路的平均值，平行于某条边的剖面可以通过另外两条边中的任一条方向的光路测得

// RayPaths 依次为平行于 a, b, c 三条边的剖面所用的光路方向
type RayPaths [3]string

// rayPath 光路平均后的平面以及取线的方式
// 平面的行列按剩余两个轴的顺序排列，剖面轴在前则取列，在后则取行
type rayPath struct {
	axis   int  // 沿该轴求平均
	column bool // true: 取第 mid 列; false: 取第 mid 行
}

// 方向 -> {光路标签 -> 平面}
var rayPathTable = [3]map[string]rayPath{
	// 平行于 a: 平面 B 为 [x][z]，平面 C 为 [x][y]
	{"b": {axis: field.AxisY, column: true}, "c": {axis: field.AxisZ, column: true}},
	// 平行于 b: 平面 A 为 [y][z]，平面 C 为 [x][y]
	{"a": {axis: field.AxisX, column: true}, "c": {axis: field.AxisZ, column: false}},
	// 平行于 c: 平面 A 为 [y][z]，平面 B 为 [x][z]
	{"a": {axis: field.AxisX, column: false}, "b": {axis: field.AxisY, column: false}},
}

func (r RayPaths) resolve() ([3]rayPath, error) {
	var res [3]rayPath
	for k := 0; k < 3; k++ {
		rp, ok := rayPathTable[k][r[k]]
		if !ok {
			return res, fmt.Errorf("%w: raypath for profile || %s must be one of %v, got %q",
				ErrInvalidConfig, faceSuffix[k], validRayPaths(k), r[k])
		}
		res[k] = rp
	}
	return res, nil
}

func validRayPaths(k int) []string {
	var labels []string
	for _, label := range faceSuffix {
		if _, ok := rayPathTable[k][label]; ok {
			labels = append(labels, label)
		}
	}
	return labels
}

// WholeBlockResult 位置为 0 到边长（微米）
type WholeBlockResult struct {
	Positions [3][]float64 `json:"positions"`
	Profiles  [3][]float64 `json:"profiles"`
}

// WholeBlock 三个方向的路径平均剖面
func WholeBlock(p *Parameters, rays RayPaths, opt Options) (WholeBlockResult, error) {
	paths, err := rays.resolve()
	if err != nil {
		return WholeBlockResult{}, err
	}
	res3D, err := Diffusion3D(p, opt)
	if err != nil {
		return WholeBlockResult{}, err
	}

	var planes [3]*mat.Dense
	mid := opt.Points / 2
	res := WholeBlockResult{Positions: res3D.SlicePositions}
	for k := 0; k < 3; k++ {
		rp := paths[k]
		if planes[rp.axis] == nil {
			planes[rp.axis] = res3D.Field.Mean(rp.axis)
		}
		if rp.column {
			res.Profiles[k] = mat.Col(nil, mid, planes[rp.axis])
		} else {
			res.Profiles[k] = mat.Row(nil, mid, planes[rp.axis])
		}
	}

	log.WithFields(log.Fields{
		"raypaths": rays,
		"points":   opt.Points,
	}).Debug("whole-block profiles")
	return res, nil
}

// WholeBlockResidual 每个测量点取位置最近的模型点，残差按 a, b, c 顺序拼接
func WholeBlockResidual(p *Parameters, rays RayPaths, data [3]Data, opt Options) ([]float64, error) {
	total := 0
	for k := 0; k < 3; k++ {
		if err := data[k].validate(); err != nil {
			return nil, fmt.Errorf("direction %s: %w", faceSuffix[k], err)
		}
		total += len(data[k].X)
	}
	wb, err := WholeBlock(p, rays, opt)
	if err != nil {
		return nil, err
	}

	residuals := make([]float64, 0, total)
	diff := make([]float64, opt.Points)
	for k := 0; k < 3; k++ {
		for n, microns := range data[k].X {
			idx := nearestIndex(wb.Positions[k], microns, diff)
			residuals = append(residuals, wb.Profiles[k][idx]-data[k].Y[n])
		}
	}
	return residuals, nil
}

// WholeBlock3D 最简单的调用方式
func WholeBlock3D(microns, log10D [3]float64, seconds float64, rays RayPaths, initial, final float64, opt Options) (WholeBlockResult, error) {
	return WholeBlock(Params3D(microns, log10D, seconds, initial, final, [3]bool{}, false, false), rays, opt)
}
