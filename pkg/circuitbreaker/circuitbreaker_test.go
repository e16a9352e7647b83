package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(failures uint32) *CircuitBreaker {
	return NewCircuitBreaker("test", Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     100 * time.Millisecond, // 短超时方便测试
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
	})
}

// TestCircuitBreaker_Closed 关闭状态下请求正常通过
func TestCircuitBreaker_Closed(t *testing.T) {
	cb := newTestBreaker(5)

	for i := 0; i < 10; i++ {
		err := cb.Execute(func() error {
			return nil
		})
		if err != nil {
			t.Fatalf("期望成功，实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}

	counts := cb.Counts()
	if counts.TotalSuccesses != 10 {
		t.Errorf("期望成功10次，实际%d次", counts.TotalSuccesses)
	}
}

// TestCircuitBreaker_TripsAfterConsecutiveFailures 连续失败触发熔断
func TestCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	cb := newTestBreaker(3)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errors.New("fetch failed")
		})
	}

	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	// 熔断打开后快速失败，不调用实际函数
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})

	if !errors.Is(err, ErrOpenState) {
		t.Errorf("期望返回ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断器打开时不应该调用实际函数")
	}
}

// TestCircuitBreaker_SuccessResetsFailureStreak 成功打断失败连击
func TestCircuitBreaker_SuccessResetsFailureStreak(t *testing.T) {
	cb := newTestBreaker(3)

	for i := 0; i < 2; i++ {
		_ = cb.Execute(func() error {
			return errors.New("fetch failed")
		})
	}
	_ = cb.Execute(func() error {
		return nil
	})
	for i := 0; i < 2; i++ {
		_ = cb.Execute(func() error {
			return errors.New("fetch failed")
		})
	}

	// 2失败+1成功+2失败：连续失败没达到3，不熔断
	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenRecovery 半开探测成功后恢复
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := newTestBreaker(3)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errors.New("fetch failed")
		})
	}

	// 等待超时，转为半开状态
	time.Sleep(150 * time.Millisecond)

	err := cb.Execute(func() error {
		return nil
	})
	if err != nil {
		t.Errorf("半开状态探测请求期望成功，实际%v", err)
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态转为CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenFailureReopens 半开探测失败后转回打开
func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := newTestBreaker(3)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errors.New("fetch failed")
		})
	}

	time.Sleep(150 * time.Millisecond)

	_ = cb.Execute(func() error {
		return errors.New("still failing")
	})

	if cb.State() != StateOpen {
		t.Errorf("期望状态转回OPEN，实际%s", cb.State())
	}
}

// TestCircuitBreaker_StateChangeCallback 状态变化回调
func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb := newTestBreaker(3)

	var changes []string
	cb.SetStateChangeCallback(func(name string, from State, to State) {
		changes = append(changes, from.String()+"->"+to.String())
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errors.New("fetch failed")
		})
	}
	time.Sleep(150 * time.Millisecond)
	_ = cb.Execute(func() error {
		return nil
	})

	want := []string{
		"CLOSED->OPEN",
		"OPEN->HALF_OPEN",
		"HALF_OPEN->CLOSED",
	}
	if len(changes) != len(want) {
		t.Fatalf("期望%d次状态变化，实际%d次: %v", len(want), len(changes), changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("第%d次状态变化期望%s，实际%s", i+1, want[i], changes[i])
		}
	}
}
