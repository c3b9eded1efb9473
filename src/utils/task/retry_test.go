package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestRetryTestSuite(t *testing.T) {
	suite.Run(t, new(RetryTestSuite))
}

type RetryTestSuite struct {
	suite.Suite
}

func (s *RetryTestSuite) TestSingleAttempt() {
	calls := 0
	err := NewRetry().Run(func() error {
		calls++
		return errors.New("refused")
	})
	require.EqualError(s.T(), err, "refused")
	require.Equal(s.T(), 1, calls)
}

func (s *RetryTestSuite) TestRetries() {
	calls, notified := 0, 0
	err := NewRetry().
		WithMaxRetries(2).
		WithMaxInterval(time.Millisecond).
		WithOnError(func(error) { notified++ }).
		Run(func() error {
			calls++
			return errors.New("refused")
		})
	require.NotNil(s.T(), err)
	require.Equal(s.T(), 3, calls)
	require.Equal(s.T(), 2, notified)
}

func (s *RetryTestSuite) TestSuccessStops() {
	calls := 0
	err := NewRetry().
		WithMaxRetries(5).
		WithMaxInterval(time.Millisecond).
		Run(func() error {
			calls++
			if calls < 2 {
				return errors.New("refused")
			}
			return nil
		})
	require.Nil(s.T(), err)
	require.Equal(s.T(), 2, calls)
}
