package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/vitrine/internal/adapters/cache"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new InMemoryCache", t, func() {
		c := cache.NewInMemoryCache[int]()

		Convey("Then it starts empty", func() {
			So(c.Size(), ShouldEqual, 0)
			_, ok := c.Get(ctx, "missing")
			So(ok, ShouldBeFalse)
		})

		Convey("When a value is stored", func() {
			c.Put(ctx, "a", 1)

			Convey("Then it can be read back", func() {
				v, ok := c.Get(ctx, "a")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 1)
				So(c.Size(), ShouldEqual, 1)
			})

			Convey("And storing the same key replaces the value", func() {
				c.Put(ctx, "a", 2)
				v, _ := c.Get(ctx, "a")
				So(v, ShouldEqual, 2)
				So(c.Size(), ShouldEqual, 1)
			})

			Convey("And deleting removes it", func() {
				c.Delete(ctx, "a")
				c.Delete(ctx, "a")
				_, ok := c.Get(ctx, "a")
				So(ok, ShouldBeFalse)
				So(c.Size(), ShouldEqual, 0)
			})
		})

		Convey("When reading hits and misses", func() {
			c.Put(ctx, "a", 1)
			c.Get(ctx, "a")
			c.Get(ctx, "a")
			c.Get(ctx, "b")

			hits, misses := cache.Stats(c)
			So(hits, ShouldEqual, 2)
			So(misses, ShouldEqual, 1)
		})
	})

	Convey("Given a bounded cache", t, func() {
		c := cache.NewInMemoryCache[string](cache.WithMaxSize(3))

		Convey("When more keys than capacity are stored", func() {
			for i := 1; i <= 5; i++ {
				c.Put(ctx, fmt.Sprintf("k%d", i), fmt.Sprintf("v%d", i))
			}

			Convey("Then the oldest are evicted first", func() {
				So(c.Size(), ShouldEqual, 3)
				for _, k := range []string{"k1", "k2"} {
					_, ok := c.Get(ctx, k)
					So(ok, ShouldBeFalse)
				}
				for _, k := range []string{"k3", "k4", "k5"} {
					_, ok := c.Get(ctx, k)
					So(ok, ShouldBeTrue)
				}
			})
		})

		Convey("When a middle entry is deleted", func() {
			c.Put(ctx, "a", "1")
			c.Put(ctx, "b", "2")
			c.Put(ctx, "c", "3")
			c.Delete(ctx, "b")
			c.Put(ctx, "d", "4")
			c.Put(ctx, "e", "5")

			Convey("Then eviction still follows insertion order", func() {
				_, ok := c.Get(ctx, "a")
				So(ok, ShouldBeFalse)
				v, ok := c.Get(ctx, "c")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "3")
				So(c.Size(), ShouldEqual, 3)
			})
		})

		Convey("When capacity is one", func() {
			one := cache.NewInMemoryCache[int](cache.WithMaxSize(1))
			one.Put(ctx, "x", 1)
			one.Put(ctx, "y", 2)
			_, ok := one.Get(ctx, "x")
			So(ok, ShouldBeFalse)
			So(one.Size(), ShouldEqual, 1)
		})
	})

	Convey("Given an unbounded cache", t, func() {
		c := cache.NewInMemoryCache[int](cache.WithMaxSize(0))
		for i := 0; i < 1000; i++ {
			c.Put(ctx, fmt.Sprintf("k%d", i), i)
		}
		So(c.Size(), ShouldEqual, 1000)
	})
}

func TestInMemoryCacheConcurrency(t *testing.T) {
	ctx := context.Background()

	Convey("Given concurrent writers and readers", t, func() {
		c := cache.NewInMemoryCache[int](cache.WithMaxSize(50))
		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 200; i++ {
					key := fmt.Sprintf("g%d-%d", g, i%70)
					c.Put(ctx, key, i)
					c.Get(ctx, key)
					if i%10 == 0 {
						c.Delete(ctx, key)
					}
				}
			}(g)
		}
		wg.Wait()

		Convey("Then the bound holds", func() {
			So(c.Size(), ShouldBeLessThanOrEqualTo, 50)
		})
	})
}
