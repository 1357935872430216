package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-nerf-dataset/pkg/core"
	"github.com/df07/go-nerf-dataset/pkg/geometry"
	"github.com/df07/go-nerf-dataset/pkg/material"
)

// uniformBackground is a constant-radiance environment
type uniformBackground struct {
	color core.Vec3
}

func (u uniformBackground) Radiance(direction core.Vec3) core.Vec3 {
	return u.color
}

// testScene is a minimal core.Scene
type testScene struct {
	shapes     []core.Shape
	background core.Background
	config     core.SamplingConfig
}

func (s *testScene) GetCamera() core.Camera                 { return nil }
func (s *testScene) GetShapes() []core.Shape                { return s.shapes }
func (s *testScene) GetBackground() core.Background         { return s.background }
func (s *testScene) GetResolution() (int, int)              { return 1, 1 }
func (s *testScene) GetSamplingConfig() core.SamplingConfig { return s.config }

// absorber scatters nothing
type absorber struct{}

func (absorber) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// createTestScene creates a diffuse sphere lit by a uniform white environment
func createTestScene(albedo core.Vec3, config core.SamplingConfig) *testScene {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -3), 0.5, material.NewLambertian(albedo))
	return &testScene{
		shapes:     []core.Shape{sphere},
		background: uniformBackground{color: core.NewVec3(1, 1, 1)},
		config:     config,
	}
}

func TestPathTracingEscapedRay(t *testing.T) {
	config := core.SamplingConfig{MaxDepth: 5, RussianRouletteMinBounces: 5}
	sc := createTestScene(core.NewVec3(0.5, 0.5, 0.5), config)
	sc.background = uniformBackground{color: core.NewVec3(0.2, 0.4, 0.6)}
	integrator := NewPathTracingIntegrator(config)

	// Pointing away from the sphere
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	color, alpha := integrator.RayColor(ray, sc, core.NewSeededSampler(1))

	if alpha != 0 {
		t.Errorf("Expected alpha 0 for escaped ray, got %v", alpha)
	}
	if color != core.NewVec3(0.2, 0.4, 0.6) {
		t.Errorf("Expected background color for escaped ray, got %v", color)
	}
}

func TestPathTracingNilBackground(t *testing.T) {
	config := core.SamplingConfig{MaxDepth: 5}
	sc := &testScene{config: config}
	integrator := NewPathTracingIntegrator(config)

	color, alpha := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), sc, core.NewSeededSampler(1))
	if color != (core.Vec3{}) || alpha != 0 {
		t.Errorf("Expected transparent black, got %v alpha %v", color, alpha)
	}
}

// TestPathTracingDepthTermination tests that ray depth is properly limited
func TestPathTracingDepthTermination(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// Depth 0 gathers nothing
	config := core.SamplingConfig{MaxDepth: 0, RussianRouletteMinBounces: 100}
	color, alpha := NewPathTracingIntegrator(config).RayColor(ray, createTestScene(core.NewVec3(0.7, 0.3, 0.3), config), core.NewSeededSampler(42))
	if color != (core.Vec3{}) || alpha != 0 {
		t.Errorf("Expected black for depth 0, got %v alpha %v", color, alpha)
	}

	// Depth 1 hits the sphere but cannot gather the environment
	config = core.SamplingConfig{MaxDepth: 1, RussianRouletteMinBounces: 100}
	color, alpha = NewPathTracingIntegrator(config).RayColor(ray, createTestScene(core.NewVec3(0.7, 0.3, 0.3), config), core.NewSeededSampler(42))
	if color != (core.Vec3{}) {
		t.Errorf("Expected black for depth 1, got %v", color)
	}
	if alpha != 1 {
		t.Errorf("Expected alpha 1 for a hit, got %v", alpha)
	}

	// Positive depth returns some color
	config = core.SamplingConfig{MaxDepth: 3, RussianRouletteMinBounces: 100}
	color, _ = NewPathTracingIntegrator(config).RayColor(ray, createTestScene(core.NewVec3(0.7, 0.3, 0.3), config), core.NewSeededSampler(42))
	if color == (core.Vec3{}) {
		t.Error("Expected non-black color for positive depth")
	}
}

// TestPathTracingFurnace checks that a convex diffuse object under a uniform environment
// reflects albedo times the environment radiance
func TestPathTracingFurnace(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.5, 0.2)
	config := core.SamplingConfig{MaxDepth: 4, RussianRouletteMinBounces: 100}
	sc := createTestScene(albedo, config)
	integrator := NewPathTracingIntegrator(config)
	sampler := core.NewSeededSampler(7)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	const samples = 2000
	var sum core.Vec3
	for i := 0; i < samples; i++ {
		color, alpha := integrator.RayColor(ray, sc, sampler)
		if alpha != 1 {
			t.Fatalf("Expected alpha 1, got %v", alpha)
		}
		sum = sum.Add(color)
	}
	mean := sum.Multiply(1.0 / samples)

	// A convex shape never occludes itself, so every scattered ray escapes
	if math.Abs(mean.X-albedo.X) > 1e-6 || math.Abs(mean.Y-albedo.Y) > 1e-6 || math.Abs(mean.Z-albedo.Z) > 1e-6 {
		t.Errorf("Expected mean %v, got %v", albedo, mean)
	}
}

func TestPathTracingAbsorbingMaterial(t *testing.T) {
	config := core.SamplingConfig{MaxDepth: 5}
	sc := &testScene{
		shapes:     []core.Shape{geometry.NewSphere(core.NewVec3(0, 0, -3), 0.5, absorber{})},
		background: uniformBackground{color: core.NewVec3(1, 1, 1)},
		config:     config,
	}
	color, alpha := NewPathTracingIntegrator(config).RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), sc, core.NewSeededSampler(3))
	if color != (core.Vec3{}) {
		t.Errorf("Expected black from absorbing material, got %v", color)
	}
	if alpha != 1 {
		t.Errorf("Expected opaque hit, got alpha %v", alpha)
	}
}

// TestPathTracingRussianRoulette tests Russian roulette termination
func TestPathTracingRussianRoulette(t *testing.T) {
	integrator := NewPathTracingIntegrator(core.SamplingConfig{
		MaxDepth:                  50,
		RussianRouletteMinBounces: 1,
	})

	tests := []struct {
		name           string
		depth          int
		throughput     core.Vec3
		u              float64
		wantTerminate  bool
		wantCompensate float64
	}{
		{"before min bounces", 50, core.NewVec3(0.01, 0.01, 0.01), 0.99, false, 1.0},
		{"low throughput survives small u", 10, core.NewVec3(0.01, 0.01, 0.01), 0.2, false, 2.0},
		{"low throughput terminates", 10, core.NewVec3(0.01, 0.01, 0.01), 0.6, true, 0.0},
		{"high throughput survives", 10, core.NewVec3(1, 1, 1), 0.9, false, 1 / 0.95},
		{"high throughput terminates", 10, core.NewVec3(1, 1, 1), 0.97, true, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terminate, compensation := integrator.ApplyRussianRoulette(tt.depth, tt.throughput, tt.u)
			if terminate != tt.wantTerminate {
				t.Errorf("Expected terminate=%v, got %v", tt.wantTerminate, terminate)
			}
			if math.Abs(compensation-tt.wantCompensate) > 1e-9 {
				t.Errorf("Expected compensation %v, got %v", tt.wantCompensate, compensation)
			}
		})
	}
}
