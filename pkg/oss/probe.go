package oss

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// DurationProber reports the playback length of a local media file in seconds.
type DurationProber func(localPath string) (float64, error)

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// FFProbeDuration asks ffprobe for the container duration.
func FFProbeDuration(localPath string) (float64, error) {
	out, err := ffmpeg.Probe(localPath)
	if err != nil {
		return 0, errors.WithMessage(err, "Failed to probe media")
	}
	return parseProbeDuration(out)
}

func parseProbeDuration(out string) (float64, error) {
	var p probeOutput
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		return 0, errors.Wrap(err, "decode ffprobe output")
	}
	d, err := strconv.ParseFloat(p.Format.Duration, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse duration %q", p.Format.Duration)
	}
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, errors.Errorf("invalid duration %v", d)
	}
	return d, nil
}
