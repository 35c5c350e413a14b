package server

import (
	"runtime"

	"gopkg.in/ini.v1"
)

const DefaultMaxPoints = 200

// Config 服务端配置，对应配置文件的 [server] 段
type Config struct {
	Addr            string
	ReadBufferSize  int
	WriteBufferSize int
	Workers         int // 批量计算使用的协程数
	MaxPoints       int // 单个请求允许的最大点数，三维场的大小为 MaxPoints³
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":9000",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Workers:         runtime.NumCPU(),
		MaxPoints:       DefaultMaxPoints,
	}
}

func LoadConfig(file *ini.File) Config {
	def := DefaultConfig()
	section := file.Section("server")
	return Config{
		Addr:            section.Key("Addr").MustString(def.Addr),
		ReadBufferSize:  section.Key("ReadBufferSize").MustInt(def.ReadBufferSize),
		WriteBufferSize: section.Key("WriteBufferSize").MustInt(def.WriteBufferSize),
		Workers:         section.Key("Workers").MustInt(def.Workers),
		MaxPoints:       section.Key("MaxPoints").MustInt(def.MaxPoints),
	}
}
