// Package main provides a headless verification tool for the starfield
// simulation core.
//
// Usage:
//
//	go run cmd/verify_starfield/main.go [flags]
//
// Flags:
//
//	--width <px>      Viewport width in logical pixels (default 1600)
//	--height <px>     Viewport height in logical pixels (default 900)
//	--frames <n>      Number of simulated frames (default 1800)
//	--delta <ms>      Frame delta in milliseconds (default 33.4)
//	--seed <n>        Random seed (default 1)
//	--verbose         Print per-phase details
//
// 该工具不开窗口，只驱动 生成→步进 循环并检查核心不变式：
// 数量夹紧、环面环绕、速度/尺寸区间。任一检查失败以非零码退出。
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/decker502/starfield/pkg/config"
	"github.com/decker502/starfield/pkg/starfield"
)

var (
	width   = flag.Float64("width", 1600, "viewport width in logical pixels")
	height  = flag.Float64("height", 900, "viewport height in logical pixels")
	frames  = flag.Int("frames", 1800, "number of simulated frames")
	delta   = flag.Float64("delta", 33.4, "frame delta in milliseconds")
	seed    = flag.Int64("seed", 1, "random seed")
	verbose = flag.Bool("verbose", false, "print per-phase details")
)

func main() {
	flag.Parse()

	cfg := config.DefaultStarfieldConfig()
	rng := rand.New(rand.NewSource(*seed))
	failures := 0

	check := func(name string, ok bool, detail string) {
		if ok {
			if *verbose {
				fmt.Printf("PASS  %-28s %s\n", name, detail)
			}
			return
		}
		failures++
		fmt.Printf("FAIL  %-28s %s\n", name, detail)
	}

	stars := starfield.Populate(*width, *height, cfg, rng)
	want := cfg.TargetStarCount(*width)
	check("populate/count", len(stars) == want,
		fmt.Sprintf("got %d, want %d", len(stars), want))
	check("populate/count-clamped", *width <= 0 || (len(stars) >= cfg.MinStars && len(stars) <= cfg.MaxStars),
		fmt.Sprintf("count %d, bounds [%d, %d]", len(stars), cfg.MinStars, cfg.MaxStars))

	inBounds := true
	for _, s := range stars {
		if s.X < 0 || s.X >= *width || s.Y < 0 || s.Y >= *height {
			inBounds = false
			break
		}
	}
	check("populate/in-bounds", inBounds, "all spawn positions inside viewport")

	damped := true
	for _, s := range stars {
		if math.Abs(s.VY) > cfg.SpeedMax*cfg.VerticalDamping+1e-12 {
			damped = false
			break
		}
	}
	check("populate/vertical-damping", damped,
		fmt.Sprintf("|vy| ≤ %.4f", cfg.SpeedMax*cfg.VerticalDamping))

	for frame := 0; frame < *frames; frame++ {
		starfield.Advance(stars, *width, *height, *delta)
		for i, s := range stars {
			if s.X < 0 || s.X >= *width || s.Y < 0 || s.Y >= *height {
				check("advance/wrap-invariant", false,
					fmt.Sprintf("frame %d star %d at (%v, %v)", frame, i, s.X, s.Y))
				os.Exit(1)
			}
		}
	}
	check("advance/wrap-invariant", true,
		fmt.Sprintf("%d frames × %d stars stayed in bounds", *frames, len(stars)))

	// 固定场景：右边缘环绕
	edge := []starfield.Star{{X: *width - 1, VX: 0.05}}
	starfield.Advance(edge, *width, *height, 1000)
	check("advance/edge-wrap", edge[0].X >= 0 && edge[0].X < *width,
		fmt.Sprintf("x=%v after 1000ms", edge[0].X))

	if failures > 0 {
		fmt.Printf("\n%d check(s) failed\n", failures)
		os.Exit(1)
	}
	fmt.Println("\nall checks passed")
}
