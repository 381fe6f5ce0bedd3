package service

import (
	"time"

	"ecommerce-services/internal/domain"
)

type Clock func() time.Time

// SystemClock 截到毫秒：Mongo 只存毫秒，保证 createdAt/updatedAt 读回后仍相等
func SystemClock() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// touch 新的 updatedAt 不早于 floors 中任何一个（createdAt、上一次 updatedAt），时钟回拨时也单调
func touch(now Clock, floors ...time.Time) time.Time {
	t := now()
	for _, f := range floors {
		if t.Before(f) {
			t = f
		}
	}
	return t
}

func kindLabel(err error) string { return domain.KindOf(err).String() }
