package block

import (
	"fmt"

	"github.com/whtowbin/Pynams/calculator"
)

// Diffusivities 一组在不同温度下测得的样品，按方向汇总扩散系数
type Diffusivities struct {
	Description string
	Blocks      []*Block
}

// Collect 返回每个样品的温度和 x, y, z 方向的 log10(D)
func (d *Diffusivities) Collect() (celsius []float64, log10D [3][]float64) {
	celsius = make([]float64, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		celsius = append(celsius, b.Temperature)
		for k := 0; k < 3; k++ {
			log10D[k] = append(log10D[k], b.Log10D[k])
		}
	}
	return celsius, log10D
}

// ArrheniusLines 每个方向一条 Arrhenius 拟合线
func (d *Diffusivities) ArrheniusLines(low, high float64) ([3]calculator.Line, error) {
	var lines [3]calculator.Line
	celsius, log10D := d.Collect()
	for k := 0; k < 3; k++ {
		line, err := calculator.ArrheniusLine(celsius, log10D[k], low, high)
		if err != nil {
			return lines, fmt.Errorf("%s axis %d: %w", d.Description, k, err)
		}
		lines[k] = line
	}
	return lines, nil
}
