package jaeger

import (
	"io"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init installs a jaeger tracer as the opentracing global tracer, which the gorm
// opentracing plugin reports db spans to. Disabled leaves the noop global tracer in place.
func Init(enabled bool, serviceName, agentAddr string) (io.Closer, error) {
	if !enabled {
		return nopCloser{}, nil
	}
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: agentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, errors.Wrapf(err, "init jaeger tracer for %s", serviceName)
	}
	opentracing.SetGlobalTracer(tracer)
	hlog.Infof("jaeger tracer reporting to %s as %s", agentAddr, serviceName)
	return closer, nil
}
