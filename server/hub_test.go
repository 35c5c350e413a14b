package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"github.com/whtowbin/Pynams/calculator"
	"github.com/whtowbin/Pynams/model"
)

func testHub() *Hub {
	opt := calculator.DefaultOptions()
	opt.Points = 20
	return NewHub(calculator.NewCalculator(opt, 2), DefaultMaxPoints)
}

func request(t *testing.T, typ string, v interface{}) model.Msg {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return model.Msg{Type: typ, Content: string(data)}
}

func testBlock() model.Block {
	return model.Block{
		Name:    "cpx",
		Lengths: [3]float64{100, 200, 300},
		Log10D:  [3]float64{-12, -12.5, -13},
		Time:    300,
		Initial: 1,
	}
}

func TestHub_Diffusion1D(t *testing.T) {
	h := testHub()
	reply := h.handle(request(t, model.TypeDiffusion1D, model.Slab{Length: 100, Log10D: -12, Time: 100, Initial: 1, Points: 15}))
	require.Equal(t, "diffusion1d_result", reply.Type, reply.Content)

	var profile calculator.Profile
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &profile))
	want, err := calculator.Profile1D(100, -12, 100, 1, 0, h.c.WithPoints(15))
	require.NoError(t, err)
	assert.InDeltaSlice(t, want.Y, profile.Y, 1e-15)
	assert.Len(t, profile.X, 15)
}

func TestHub_Residual1D(t *testing.T) {
	h := testHub()
	reply := h.handle(request(t, model.TypeResidual1D, model.Residual1DReq{
		Slab: model.Slab{Length: 100, Log10D: -14, Time: 3600, Initial: 1},
		Data: model.Series{X: []float64{50}, Y: []float64{0.25}},
	}))
	require.Equal(t, model.ResultType(model.TypeResidual1D), reply.Type, reply.Content)

	var resp model.ResidualResp
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &resp))
	require.Len(t, resp.Residual, 1)
	assert.InDelta(t, 0.75, resp.Residual[0], 1e-6)
}

func TestHub_WholeBlock(t *testing.T) {
	h := testHub()
	reply := h.handle(request(t, model.TypeWholeBlock, model.BlockReq{Block: testBlock(), Points: 8}))
	require.Equal(t, model.ResultType(model.TypeWholeBlock), reply.Type, reply.Content)

	var resp model.WholeBlockResp
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &resp))
	for k := 0; k < 3; k++ {
		assert.Len(t, resp.Profiles[k], 8)
		assert.Len(t, resp.Positions[k], 8)
	}
}

func TestHub_WholeBlockResidual(t *testing.T) {
	h := testHub()
	b := testBlock()
	b.RayPaths = [3]string{"c", "c", "b"}
	reply := h.handle(request(t, model.TypeWholeBlockResidual, model.WholeBlockResidualReq{
		Block: b,
		Data: [3]model.Series{
			{X: []float64{10, 50}, Y: []float64{0, 0}},
			{X: []float64{100}, Y: []float64{0}},
			{},
		},
	}))
	require.Equal(t, model.ResultType(model.TypeWholeBlockResidual), reply.Type, reply.Content)

	var resp model.ResidualResp
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &resp))
	assert.Len(t, resp.Residual, 3)
}

func TestHub_Diffusion3D(t *testing.T) {
	h := testHub()
	reply := h.handle(request(t, model.TypeDiffusion3D, model.BlockReq{Block: testBlock(), Points: 5}))
	require.Equal(t, model.ResultType(model.TypeDiffusion3D), reply.Type, reply.Content)

	var resp model.FieldResp
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &resp))
	require.Len(t, resp.Values, 5)
	assert.Len(t, resp.Values[0], 5)
	assert.Len(t, resp.Values[0][0], 5)
	assert.Equal(t, resp.Values[2][2][3], resp.Slices[2][3])
}

func TestHub_Arrhenius(t *testing.T) {
	h := testHub()
	high := 9.0
	reply := h.handle(request(t, model.TypeArrhenius, model.ArrheniusReq{
		Celsius: []float64{700, 800, 900},
		Log10D:  []float64{-13, -12, -11},
		High:    &high,
	}))
	require.Equal(t, model.ResultType(model.TypeArrhenius), reply.Type, reply.Content)

	var line calculator.Line
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &line))
	assert.Equal(t, calculator.DefaultArrheniusLow, line.X[0])
	assert.Equal(t, 9.0, line.X[len(line.X)-1])
	assert.Less(t, line.Slope, 0.0)
}

func TestHub_Sweep(t *testing.T) {
	h := testHub()
	reply := h.handle(request(t, model.TypeSweep, model.SweepReq{
		Slab:  model.Slab{Length: 100, Log10D: -12, Initial: 1, Points: 9},
		Times: []float64{10, 100, 1000},
	}))
	require.Equal(t, model.ResultType(model.TypeSweep), reply.Type, reply.Content)

	var profiles []calculator.Profile
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &profiles))
	require.Len(t, profiles, 3)
	// 时间越长中心值越低
	assert.Greater(t, profiles[0].Y[4], profiles[2].Y[4])
}

func TestHub_Errors(t *testing.T) {
	h := testHub()
	cases := []struct {
		name string
		msg  model.Msg
	}{
		{"unknown type", model.Msg{Type: "start"}},
		{"bad json", model.Msg{Type: model.TypeDiffusion1D, Content: "{"}},
		{"negative time", request(t, model.TypeDiffusion1D, model.Slab{Length: 100, Log10D: -12, Time: -1})},
		{"bad raypaths", request(t, model.TypeWholeBlock, model.BlockReq{Block: model.Block{
			Lengths: [3]float64{1, 1, 1}, RayPaths: [3]string{"a", "a", "a"},
		}})},
		{"arrhenius mismatch", request(t, model.TypeArrhenius, model.ArrheniusReq{Celsius: []float64{1}})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reply := h.handle(tc.msg)
			assert.Equal(t, model.TypeError, reply.Type)
			assert.NotEmpty(t, reply.Content)
		})
	}
}

// 点数超过上限的请求直接回复错误，不分配浓度场
func TestHub_MaxPoints(t *testing.T) {
	h := testHub()
	cases := []model.Msg{
		request(t, model.TypeDiffusion3D, model.BlockReq{Block: testBlock(), Points: 100000}),
		request(t, model.TypeWholeBlock, model.BlockReq{Block: testBlock(), Points: DefaultMaxPoints + 1}),
		request(t, model.TypeWholeBlockResidual, model.WholeBlockResidualReq{Block: testBlock(), Points: 5000}),
		request(t, model.TypeDiffusion1D, model.Slab{Length: 100, Log10D: -12, Time: 1, Initial: 1, Points: 100000}),
		request(t, model.TypeSweep, model.SweepReq{Slab: model.Slab{Length: 100, Log10D: -12, Initial: 1, Points: 100000}, Times: []float64{1}}),
	}
	for _, msg := range cases {
		t.Run(msg.Type, func(t *testing.T) {
			reply := h.handle(msg)
			assert.Equal(t, model.TypeError, reply.Type)
			assert.Contains(t, reply.Content, "at most 200")
		})
	}

	reply := h.handle(request(t, model.TypeDiffusion3D, model.BlockReq{Block: testBlock(), Points: 4}))
	assert.Equal(t, model.ResultType(model.TypeDiffusion3D), reply.Type, reply.Content)
}

// 计算中的 panic 变成错误回复
func TestHub_Recover(t *testing.T) {
	h := NewHub(calculator.NewCalculator(calculator.DefaultOptions(), 1), 0)
	var reply model.Msg
	assert.NotPanics(t, func() {
		reply = h.handle(request(t, model.TypeDiffusion3D, model.BlockReq{Block: testBlock(), Points: 100000}))
	})
	assert.Equal(t, model.TypeError, reply.Type)
	assert.Contains(t, reply.Content, "internal error")
}

func TestLoadConfig(t *testing.T) {
	file, err := ini.Load([]byte(`
[server]
Addr = :8080
Workers = 3
`))
	require.NoError(t, err)
	cfg := LoadConfig(file)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 1024, cfg.ReadBufferSize)
	assert.Equal(t, 1024, cfg.WriteBufferSize)
	assert.Equal(t, DefaultMaxPoints, cfg.MaxPoints)

	file, err = ini.Load([]byte("[server]\nMaxPoints = 50\n"))
	require.NoError(t, err)
	assert.Equal(t, 50, LoadConfig(file).MaxPoints)
}
