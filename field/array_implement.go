package field

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ArrField 用一维数组实现的三维场，遍历时局部性更好
type ArrField struct {
	nx, ny, nz int
	data       []float64
}

// 工厂方法
func NewArrField(nx, ny, nz int) *ArrField {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		panic(fmt.Sprintf("field: invalid size %dx%dx%d", nx, ny, nz))
	}
	return &ArrField{
		nx:   nx,
		ny:   ny,
		nz:   nz,
		data: make([]float64, nx*ny*nz),
	}
}

// Outer 三个一维剖面的外积: v[i][j][k] = px[i] * py[j] * pz[k]
func Outer(px, py, pz []float64) *ArrField {
	f := NewArrField(len(px), len(py), len(pz))
	idx := 0
	for i := 0; i < f.nx; i++ {
		for j := 0; j < f.ny; j++ {
			pxy := px[i] * py[j]
			for k := 0; k < f.nz; k++ {
				f.data[idx] = pxy * pz[k]
				idx++
			}
		}
	}
	return f
}

func (f *ArrField) index(i, j, k int) int {
	return (i*f.ny+j)*f.nz + k
}

func (f *ArrField) Size() (int, int, int) {
	return f.nx, f.ny, f.nz
}

func (f *ArrField) Get(i, j, k int) float64 {
	return f.data[f.index(i, j, k)]
}

func (f *ArrField) Set(i, j, k int, v float64) {
	f.data[f.index(i, j, k)] = v
}

func (f *ArrField) GetSlice(i int) *mat.Dense {
	start := i * f.ny * f.nz
	return mat.NewDense(f.ny, f.nz, f.data[start:start+f.ny*f.nz])
}

func (f *ArrField) Line(axis, i, j, k int) []float64 {
	var line []float64
	switch axis {
	case AxisX:
		line = make([]float64, f.nx)
		for n := range line {
			line[n] = f.Get(n, j, k)
		}
	case AxisY:
		line = make([]float64, f.ny)
		for n := range line {
			line[n] = f.Get(i, n, k)
		}
	case AxisZ:
		line = make([]float64, f.nz)
		for n := range line {
			line[n] = f.Get(i, j, n)
		}
	default:
		panic(fmt.Sprintf("field: invalid axis %d", axis))
	}
	return line
}

// Mean 平面的行、列按剩余两个轴的顺序排列
// axis = 0 -> [y][z], axis = 1 -> [x][z], axis = 2 -> [x][y]
func (f *ArrField) Mean(axis int) *mat.Dense {
	var plane *mat.Dense
	switch axis {
	case AxisX:
		plane = mat.NewDense(f.ny, f.nz, nil)
		for i := 0; i < f.nx; i++ {
			plane.Add(plane, f.GetSlice(i))
		}
		plane.Scale(1/float64(f.nx), plane)
	case AxisY:
		plane = mat.NewDense(f.nx, f.nz, nil)
		f.Traverse(func(i, _, k int, v float64) {
			plane.Set(i, k, plane.At(i, k)+v)
		})
		plane.Scale(1/float64(f.ny), plane)
	case AxisZ:
		plane = mat.NewDense(f.nx, f.ny, nil)
		f.Traverse(func(i, j, _ int, v float64) {
			plane.Set(i, j, plane.At(i, j)+v)
		})
		plane.Scale(1/float64(f.nz), plane)
	default:
		panic(fmt.Sprintf("field: invalid axis %d", axis))
	}
	return plane
}

func (f *ArrField) Traverse(fn func(i, j, k int, v float64)) {
	idx := 0
	for i := 0; i < f.nx; i++ {
		for j := 0; j < f.ny; j++ {
			for k := 0; k < f.nz; k++ {
				fn(i, j, k, f.data[idx])
				idx++
			}
		}
	}
}

func (f *ArrField) Apply(fn func(v float64) float64) {
	for idx, v := range f.data {
		f.data[idx] = fn(v)
	}
}

// Values 返回嵌套切片形式的拷贝，用于序列化
func (f *ArrField) Values() [][][]float64 {
	res := make([][][]float64, f.nx)
	for i := range res {
		res[i] = make([][]float64, f.ny)
		for j := range res[i] {
			start := f.index(i, j, 0)
			res[i][j] = append([]float64(nil), f.data[start:start+f.nz]...)
		}
	}
	return res
}
