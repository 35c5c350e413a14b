package model

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 连接建立后服务端发送的第一条消息
type Hello struct {
	ID string `json:"id"`
}

// 测量数据，x 为距块边缘的位置（微米）
type Series struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// 一维模型请求
// Points 为 0 时使用服务端配置的点数
type Slab struct {
	Length  float64 `json:"length"`  // 微米
	Log10D  float64 `json:"log10_d"` // m²/s
	Time    float64 `json:"time"`    // 秒
	Initial float64 `json:"initial"`
	Final   float64 `json:"final"`
	Points  int     `json:"points"`
}

type Residual1DReq struct {
	Slab Slab   `json:"slab"`
	Data Series `json:"data"`
}

type SweepReq struct {
	Slab  Slab      `json:"slab"`
	Times []float64 `json:"times"`
}

// 样品描述
type Block struct {
	Name        string     `json:"name"`
	Lengths     [3]float64 `json:"lengths"`
	Temperature float64    `json:"temperature"`
	Time        float64    `json:"time"`
	Log10D      [3]float64 `json:"log10_d"`
	Initial     float64    `json:"initial"`
	Final       float64    `json:"final"`
	RayPaths    [3]string  `json:"raypaths"`
	VaryD       [3]bool    `json:"vary_d"`
	VaryInitial bool       `json:"vary_initial"`
	VaryFinal   bool       `json:"vary_final"`
}

type BlockReq struct {
	Block  Block `json:"block"`
	Points int   `json:"points"`
}

type WholeBlockResidualReq struct {
	Block  Block     `json:"block"`
	Points int       `json:"points"`
	Data   [3]Series `json:"data"`
}

// Low、High 为空时使用默认范围 6 到 10
type ArrheniusReq struct {
	Celsius []float64 `json:"celsius"`
	Log10D  []float64 `json:"log10_d"`
	Low     *float64  `json:"low,omitempty"`
	High    *float64  `json:"high,omitempty"`
}

// 三维浓度场及过中心的切片
type FieldResp struct {
	Values         [][][]float64 `json:"values"`
	Slices         [3][]float64  `json:"slices"`
	SlicePositions [3][]float64  `json:"slice_positions"`
}

type WholeBlockResp struct {
	Positions [3][]float64 `json:"positions"`
	Profiles  [3][]float64 `json:"profiles"`
}

type ResidualResp struct {
	Residual []float64 `json:"residual"`
}
