package calculator

// Calculator 绑定一组计算配置，供服务端按请求调用
// 本身不保存任何计算结果，可以被多个连接共享
type Calculator struct {
	opt     Options
	workers int
}

func NewCalculator(opt Options, workers int) *Calculator {
	return &Calculator{opt: opt, workers: workers}
}

func (c *Calculator) Options() Options {
	return c.opt
}

// WithPoints 返回使用不同点数的配置，points <= 0 时保持不变
func (c *Calculator) WithPoints(points int) Options {
	opt := c.opt
	if points > 0 {
		opt.Points = points
	}
	return opt
}

func (c *Calculator) Profile(p *Parameters, points int) (Profile, error) {
	return Diffusion1D(p, c.WithPoints(points))
}

func (c *Calculator) Residual(p *Parameters, data Data) ([]float64, error) {
	return Residual1D(p, data, c.opt)
}

func (c *Calculator) Field(p *Parameters, points int) (Result3D, error) {
	return Diffusion3D(p, c.WithPoints(points))
}

func (c *Calculator) WholeBlock(p *Parameters, rays RayPaths, points int) (WholeBlockResult, error) {
	return WholeBlock(p, rays, c.WithPoints(points))
}

func (c *Calculator) WholeBlockResidual(p *Parameters, rays RayPaths, data [3]Data, points int) ([]float64, error) {
	return WholeBlockResidual(p, rays, data, c.WithPoints(points))
}

func (c *Calculator) Sweep(p *Parameters, times []float64, points int) ([]Profile, error) {
	return Sweep1D(p, times, c.WithPoints(points), c.workers)
}
