package server

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/whtowbin/Pynams/block"
	"github.com/whtowbin/Pynams/calculator"
	"github.com/whtowbin/Pynams/model"
)

// Hub 每个连接一个，请求按到达顺序依次计算并回复
type Hub struct {
	id        string
	c         *calculator.Calculator
	maxPoints int
	conn      *websocket.Conn
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
	done  chan struct{}
}

// NewHub maxPoints <= 0 时不限制请求的点数
func NewHub(c *calculator.Calculator, maxPoints int) *Hub {
	return &Hub{
		id:        uuid.NewString(),
		c:         c,
		maxPoints: maxPoints,
		msg:       make(chan model.Msg, 10),
		reply:     make(chan model.Msg, 10),
		done:      make(chan struct{}),
	}
}

func (h *Hub) hello() model.Msg {
	data, _ := json.Marshal(model.Hello{ID: h.id})
	return model.Msg{Type: model.TypeHello, Content: string(data)}
}

// close 不再接收请求，等待已有的回复发送完
func (h *Hub) close() {
	close(h.msg)
	<-h.done
}

func (h *Hub) handleResponse() {
	defer close(h.done)
	for reply := range h.reply {
		if err := h.conn.WriteJSON(&reply); err != nil {
			log.WithField("hub", h.id).Warn("write: ", err)
		}
	}
}

func (h *Hub) handleRequest() {
	defer close(h.reply)
	for msg := range h.msg {
		h.reply <- h.handle(msg)
	}
}

// handle 计算出错时回复 error 类型的消息，内容为错误信息
// 计算中的 panic 只影响当前请求，不会结束整个服务
func (h *Hub) handle(msg model.Msg) (reply model.Msg) {
	logger := log.WithFields(log.Fields{
		"hub":  h.id,
		"type": msg.Type,
	})
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic: ", r)
			reply = model.Msg{Type: model.TypeError, Content: fmt.Sprintf("internal error: %v", r)}
		}
	}()
	content, err := h.dispatch(msg)
	if err == nil {
		var data []byte
		data, err = json.Marshal(content)
		if err == nil {
			logger.Debug("request handled")
			return model.Msg{Type: model.ResultType(msg.Type), Content: string(data)}
		}
	}
	logger.Warn(err)
	return model.Msg{Type: model.TypeError, Content: err.Error()}
}

func (h *Hub) dispatch(msg model.Msg) (interface{}, error) {
	switch msg.Type {
	case model.TypeDiffusion1D:
		var req model.Slab
		if err := h.decode(msg, &req, func() int { return req.Points }); err != nil {
			return nil, err
		}
		return h.c.Profile(slabParams(req), req.Points)
	case model.TypeResidual1D:
		var req model.Residual1DReq
		if err := h.decode(msg, &req, nil); err != nil {
			return nil, err
		}
		residual, err := h.c.Residual(slabParams(req.Slab), calculator.Data(req.Data))
		if err != nil {
			return nil, err
		}
		return model.ResidualResp{Residual: residual}, nil
	case model.TypeSweep:
		var req model.SweepReq
		if err := h.decode(msg, &req, func() int { return req.Slab.Points }); err != nil {
			return nil, err
		}
		return h.c.Sweep(slabParams(req.Slab), req.Times, req.Slab.Points)
	case model.TypeDiffusion3D:
		var req model.BlockReq
		if err := h.decode(msg, &req, func() int { return req.Points }); err != nil {
			return nil, err
		}
		res, err := h.c.Field(block.FromRequest(req.Block).Params(), req.Points)
		if err != nil {
			return nil, err
		}
		return model.FieldResp{
			Values:         res.Field.Values(),
			Slices:         res.Slices,
			SlicePositions: res.SlicePositions,
		}, nil
	case model.TypeWholeBlock:
		var req model.BlockReq
		if err := h.decode(msg, &req, func() int { return req.Points }); err != nil {
			return nil, err
		}
		b := block.FromRequest(req.Block)
		res, err := h.c.WholeBlock(b.Params(), b.RayPaths, req.Points)
		if err != nil {
			return nil, err
		}
		return model.WholeBlockResp(res), nil
	case model.TypeWholeBlockResidual:
		var req model.WholeBlockResidualReq
		if err := h.decode(msg, &req, func() int { return req.Points }); err != nil {
			return nil, err
		}
		b := block.FromRequest(req.Block)
		var data [3]calculator.Data
		for k := 0; k < 3; k++ {
			data[k] = calculator.Data(req.Data[k])
		}
		residual, err := h.c.WholeBlockResidual(b.Params(), b.RayPaths, data, req.Points)
		if err != nil {
			return nil, err
		}
		return model.ResidualResp{Residual: residual}, nil
	case model.TypeArrhenius:
		var req model.ArrheniusReq
		if err := h.decode(msg, &req, nil); err != nil {
			return nil, err
		}
		low, high := calculator.DefaultArrheniusLow, calculator.DefaultArrheniusHigh
		if req.Low != nil {
			low = *req.Low
		}
		if req.High != nil {
			high = *req.High
		}
		return calculator.ArrheniusLine(req.Celsius, req.Log10D, low, high)
	default:
		return nil, fmt.Errorf("no such type %q", msg.Type)
	}
}

// decode 解析请求内容，points 不为空时检查请求的点数
func (h *Hub) decode(msg model.Msg, v interface{}, points func() int) error {
	if err := json.Unmarshal([]byte(msg.Content), v); err != nil {
		return fmt.Errorf("decode %s: %w", msg.Type, err)
	}
	if points == nil || h.maxPoints <= 0 {
		return nil
	}
	if n := points(); n > h.maxPoints {
		return fmt.Errorf("%w: %d points requested, at most %d allowed", calculator.ErrInvalidConfig, n, h.maxPoints)
	}
	return nil
}

func slabParams(s model.Slab) *calculator.Parameters {
	return calculator.Params1D(s.Length, s.Log10D, s.Time, s.Initial, s.Final, false, false, false)
}
