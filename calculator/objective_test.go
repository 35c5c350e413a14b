package calculator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// syntheticData 用给定参数生成的测量数据，以块边缘为原点
func syntheticData(t *testing.T, p *Parameters, opt Options) Data {
	profile, err := Diffusion1D(p, opt)
	require.NoError(t, err)
	a, _ := p.Value(Length)
	data := Data{X: make([]float64, len(profile.X)), Y: profile.Y}
	for i, x := range profile.X {
		data.X[i] = x + a/2
	}
	return data
}

func TestObjective1D(t *testing.T) {
	opt := optWith(MethodErf, 25)
	p := Params1D(100, -12, 100, 1, 0, true, false, true)
	obj, err := Objective1D(p, syntheticData(t, p, opt), opt)
	require.NoError(t, err)

	assert.Equal(t, []float64{-12, 0}, obj.X0())
	assert.Equal(t, 2, obj.Dim())
	assert.Equal(t, 25, obj.Len())

	dst := make([]float64, obj.Len())
	require.NoError(t, obj.Eval(dst, obj.X0()))
	for _, r := range dst {
		assert.InDelta(t, 0, r, 1e-9)
	}

	// 偏离真值后残差不为零，原参数不受影响
	require.NoError(t, obj.Eval(dst, []float64{-11, 0}))
	assert.Greater(t, maxAbs(dst), 1e-3)
	d, _ := p.Value(DiffusivityLog10)
	assert.Equal(t, -12.0, d)
	assert.Equal(t, []float64{-12, 0}, obj.X0())
}

func TestObjective_Errors(t *testing.T) {
	opt := optWith(MethodErf, 10)
	p := Params1D(100, -12, 100, 1, 0, true, false, false)
	obj, err := Objective1D(p, syntheticData(t, p, opt), opt)
	require.NoError(t, err)

	assert.ErrorIs(t, obj.Eval(make([]float64, 3), obj.X0()), ErrShapeMismatch)
	assert.ErrorIs(t, obj.Eval(make([]float64, 10), []float64{1, 2}), ErrShapeMismatch)

	_, err = Objective1D(Params1D(100, -12, -1, 1, 0, true, false, false), Data{}, opt)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// 雅可比矩阵的尺寸与可变参数个数不符
	assert.ErrorIs(t, obj.Jacobian(mat.NewDense(10, 2, nil), obj.X0()), ErrShapeMismatch)
	assert.ErrorIs(t, obj.Jacobian(mat.NewDense(9, 1, nil), obj.X0()), ErrShapeMismatch)
	assert.ErrorIs(t, obj.Jacobian(mat.NewDense(10, 1, nil), []float64{-12, 0}), ErrShapeMismatch)

	// 没有可变参数
	fixed := Params1D(100, -12, 100, 1, 0, false, false, false)
	obj, err = Objective1D(fixed, syntheticData(t, fixed, opt), opt)
	require.NoError(t, err)
	assert.Equal(t, 0, obj.Dim())
	assert.ErrorIs(t, obj.Jacobian(mat.NewDense(10, 1, nil), obj.X0()), ErrInvalidConfig)
}

func TestObjective_Concurrent(t *testing.T) {
	opt := optWith(MethodInfSum, 30)
	p := Params1D(100, -12, 100, 1, 0, true, false, false)
	obj, err := Objective1D(p, syntheticData(t, p, opt), opt)
	require.NoError(t, err)

	want := make([]float64, obj.Len())
	require.NoError(t, obj.Eval(want, []float64{-12.3}))

	var wg sync.WaitGroup
	results := make([][]float64, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x := []float64{-12.3}
			if i%2 == 1 {
				x[0] = -11.7
			}
			results[i] = make([]float64, obj.Len())
			assert.NoError(t, obj.Eval(results[i], x))
		}(i)
	}
	wg.Wait()
	for i := 0; i < len(results); i += 2 {
		assert.Equal(t, want, results[i])
	}
}

func TestObjective_Jacobian(t *testing.T) {
	opt := optWith(MethodErf, 12)
	rays := RayPaths{"b", "a", "a"}
	p := Params3D(testLengths, testLog10D, 300, 1, 0, [3]bool{true, false, true}, false, false)
	wb, err := WholeBlock(p, rays, opt)
	require.NoError(t, err)
	var data [3]Data
	for k := 0; k < 3; k++ {
		data[k] = Data{X: wb.Positions[k], Y: wb.Profiles[k]}
	}

	obj, err := ObjectiveWholeBlock(p, rays, data, opt)
	require.NoError(t, err)
	require.Equal(t, 36, obj.Len())
	require.Equal(t, 2, obj.Dim())

	jac := mat.NewDense(obj.Len(), obj.Dim(), nil)
	require.NoError(t, obj.Jacobian(jac, obj.X0()))
	// 扩散系数增大，剖面整体下降
	col := mat.Col(nil, 0, jac)
	assert.Less(t, sum(col), 0.0)
}

func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}

func sum(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v
	}
	return s
}
