package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 3
	defaultDelay    = time.Second
	defaultTimeout  = 60 * time.Second

	DelayTypeFixed   = "fixed"
	DelayTypeBackoff = "backoff"
)

type RetryConfig struct {
	Attempts  uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay     time.Duration `env:"DELAY" envDefault:"1s"`
	MaxDelay  time.Duration `env:"MAX_DELAY" envDefault:"10s"`
	DelayType string        `env:"DELAY_TYPE" envDefault:"fixed"`
	// Timeout bounds the whole retry loop, delays included. Zero disables it.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"60s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	opts := []retry.Option{
		retry.Attempts(rc.Attempts),
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
	}

	if rc.DelayType == DelayTypeBackoff {
		opts = append(opts, retry.DelayType(retry.BackOffDelay))
	} else {
		opts = append(opts, retry.DelayType(retry.FixedDelay))
	}

	return opts
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts:  defaultAttempts,
		Delay:     defaultDelay,
		DelayType: DelayTypeFixed,
		Timeout:   defaultTimeout,
	}
}

// Class decides whether a failed attempt may be repeated.
type Class int

const (
	Retryable Class = iota
	Terminal
)

// Classifier maps an attempt error to its Class.
type Classifier func(err error) Class

// Do runs fn until it succeeds, a Terminal error is returned, the attempts
// run out or ctx is done. The error of the last attempt is returned as is.
// onRetry, when set, is called with the 1-based attempt number of every
// failed attempt.
func Do(
	ctx context.Context,
	cfg RetryConfig,
	classify Classifier,
	onRetry func(attempt uint, err error),
	fn func(ctx context.Context) error,
) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	opts := append(cfg.ToRetryOptions(),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.WrapContextErrorWithLastError(true),
		retry.RetryIf(func(err error) bool {
			if ctx.Err() != nil {
				return false
			}
			return classify == nil || classify(err) == Retryable
		}),
		retry.OnRetry(func(n uint, err error) {
			if onRetry != nil {
				onRetry(n+1, err)
			}
		}),
	)

	return retry.Do(func() error {
		return fn(ctx)
	}, opts...)
}
