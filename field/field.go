/**
 *
 * 三维浓度场
 * 矩形块内的浓度按 [x][y][z] 存放在一段连续数组中，x 为最外层，
 * 每个 x 对应一个 [y][z] 的切片，切片可以直接作为 gonum 矩阵使用
 *
 */

package field

import "gonum.org/v1/gonum/mat"

// 坐标轴
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

type Field interface {
	// 三个方向的点数
	Size() (nx, ny, nz int)

	// 获取对应下标的数值
	Get(i, j, k int) float64

	// 设定对应下标的数值
	Set(i, j, k int, v float64)

	// 获取某个 x 切片，返回的矩阵与场共享数据
	GetSlice(i int) *mat.Dense

	// 沿 axis 方向取一条线，另外两个方向的下标由 i, j, k 给出
	Line(axis, i, j, k int) []float64

	// 沿 axis 方向取平均，得到剩余两个方向（按轴序）组成的平面
	Mean(axis int) *mat.Dense

	// 正向遍历
	Traverse(f func(i, j, k int, v float64))

	// 对每个元素做变换
	Apply(f func(v float64) float64)
}
