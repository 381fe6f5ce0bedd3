// Package health 提供 /ready 用的依赖探测。并发的探测请求经 singleflight 合并，
// 避免探针风暴打到存储。
package health

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"
)

// Pinger 任何能 Ping 的依赖（存储、redis）
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Status struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (s Status) Up() bool { return s.Status == "UP" }

type Checker struct {
	timeout time.Duration
	deps    map[string]Pinger
	sf      singleflight.Group
}

func NewChecker(timeout time.Duration) *Checker {
	return &Checker{timeout: timeout, deps: map[string]Pinger{}}
}

// Add 启动期调用，非并发安全
func (c *Checker) Add(name string, p Pinger) *Checker {
	if p != nil {
		c.deps[name] = p
	}
	return c
}

func (c *Checker) Check(ctx context.Context) Status {
	v, _, _ := c.sf.Do("ready", func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		names := make([]string, 0, len(c.deps))
		for name := range c.deps {
			names = append(names, name)
		}
		sort.Strings(names)

		st := Status{Status: "UP", Checks: make(map[string]string, len(names))}
		for _, name := range names {
			if err := c.deps[name].Ping(ctx); err != nil {
				st.Status = "DOWN"
				st.Checks[name] = "DOWN: " + err.Error()
				continue
			}
			st.Checks[name] = "UP"
		}
		return st, nil
	})
	return v.(Status)
}
