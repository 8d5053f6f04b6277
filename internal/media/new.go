package media

import (
	"github.com/kkdai/youtube/v2"
	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/pkg/executor"
)

// Media implements Acquirer and Toolkit on top of ffmpeg, ffprobe and YouTube.
type Media struct {
	ffmpeg   string
	ffprobe  string
	tempDir  string
	executor executor.Executor
	youtube  videoClient
	logger   logger.Logger
}

// New creates a Media instance
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) *Media {
	return &Media{
		ffmpeg:   cfg.FFmpeg.BinaryPath,
		ffprobe:  cfg.FFmpeg.ProbePath,
		tempDir:  cfg.Paths.Temp,
		executor: exec,
		youtube:  &youtube.Client{},
		logger:   log,
	}
}
