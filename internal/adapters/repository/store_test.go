package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestStore(t *testing.T) {
	Convey("Given a store with a one minute TTL", t, func() {
		ctx := context.Background()
		clock := &fakeClock{now: time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)}
		s := NewStore[string](WithTTL(time.Minute), WithClock(clock.Now))

		Convey("When the key was never stored", func() {
			_, _, err := s.Get(ctx, "league")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("When a snapshot is stored", func() {
			s.Put(ctx, "league", "v1")

			Convey("Then it is served inside the TTL", func() {
				clock.Advance(59 * time.Second)
				v, at, err := s.Get(ctx, "league")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, "v1")
				So(at.Equal(time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)), ShouldBeTrue)
			})

			Convey("Then it expires at the TTL", func() {
				clock.Advance(time.Minute)
				v, _, err := s.Get(ctx, "league")
				So(errors.Is(err, ErrExpired), ShouldBeTrue)
				So(v, ShouldEqual, "")
				So(s.Len(ctx), ShouldEqual, 1)
			})

			Convey("Then a new Put replaces it and restarts the clock", func() {
				clock.Advance(50 * time.Second)
				s.Put(ctx, "league", "v2")
				clock.Advance(50 * time.Second)
				v, _, err := s.Get(ctx, "league")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, "v2")
			})

			Convey("Then Invalidate removes it", func() {
				s.Invalidate(ctx, "league")
				_, _, err := s.Get(ctx, "league")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
				So(s.Len(ctx), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a store without a TTL", t, func() {
		ctx := context.Background()
		s := NewStore[int]()
		s.Put(ctx, "k", 1)

		Convey("Then nothing is served", func() {
			_, _, err := s.Get(ctx, "k")
			So(errors.Is(err, ErrExpired), ShouldBeTrue)
			So(s.TTL(), ShouldEqual, time.Duration(0))
		})
	})

	Convey("Given concurrent readers and writers", t, func() {
		ctx := context.Background()
		s := NewStore[int](WithTTL(time.Hour))

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				s.Put(ctx, "k", i)
				_, _, _ = s.Get(ctx, "k")
			}(i)
		}
		wg.Wait()

		_, _, err := s.Get(ctx, "k")
		So(err, ShouldBeNil)
		So(s.Len(ctx), ShouldEqual, 1)
	})
}
