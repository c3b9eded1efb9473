package task

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Implement operation retrying
type Retry struct {
	ctx         context.Context
	maxRetries  uint64
	maxInterval time.Duration
	onError     func(error)
}

func NewRetry() *Retry {
	return &Retry{
		ctx:     context.Background(),
		onError: func(error) {},
	}
}

// Number of repetitions after the first failure. 0 means the operation runs once
func (self *Retry) WithMaxRetries(maxRetries uint64) *Retry {
	self.maxRetries = maxRetries
	return self
}

func (self *Retry) WithMaxInterval(maxInterval time.Duration) *Retry {
	self.maxInterval = maxInterval
	return self
}

func (self *Retry) WithContext(ctx context.Context) *Retry {
	self.ctx = ctx
	return self
}

func (self *Retry) WithOnError(v func(error)) *Retry {
	self.onError = v
	return self
}

func (self *Retry) onNotify(err error, duration time.Duration) {
	self.onError(err)
}

func (self *Retry) Run(f func() error) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0
	if self.maxInterval > 0 {
		b.MaxInterval = self.maxInterval
		if b.InitialInterval > self.maxInterval {
			b.InitialInterval = self.maxInterval
		}
	}
	return backoff.RetryNotify(f, backoff.WithContext(backoff.WithMaxRetries(b, self.maxRetries), self.ctx), self.onNotify)
}
