package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/akmonengine/collision"
	"github.com/akmonengine/collision/config"
	"github.com/akmonengine/collision/contact"
	"github.com/akmonengine/collision/logger"
	"github.com/akmonengine/collision/metrics"
	"github.com/akmonengine/collision/shape3d"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// the ground ignores the ball: it rolls on it without events
const (
	attributeGround = iota
	attributeBall
	attributeObstacle
)

type Scene struct {
	Registry *collision.Registry

	ball     collision.ColliderID
	velocity mgl64.Vec3
	radius   float64
}

func on(name, event string) collision.Callback {
	return func(hit contact.HitInfo) {
		fmt.Printf("  %-8s %-5s normal=%v penetration=%.3f\n", name, event, hit.Normal, hit.Penetration)
	}
}

func listen(name string, info collision.Collider3D) collision.Collider3D {
	info.OnCollisionEnter = on(name, "enter")
	info.OnCollisionStay = on(name, "stay")
	info.OnCollisionExit = on(name, "exit")
	info.Owner = name
	return info
}

// SetupScene places a ball rolling along X toward a rotated crate, above a ground plane
func SetupScene(registry *collision.Registry) *Scene {
	ground := collision.NewCollider3D(shape3d.NewPlane(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 0}))
	ground.Attribute = collision.AttributeBit(attributeGround)
	ground.IgnoreAttribute = collision.AttributeBit(attributeBall)
	registry.Colliders3D.Add(listen("ground", ground))

	crateTransform := shape3d.Transform{
		Position: mgl64.Vec3{5, 1, 0},
		Rotation: mgl64.QuatRotate(mgl64.DegToRad(45), mgl64.Vec3{0, 1, 0}),
	}
	crate := collision.NewCollider3D(shape3d.NewOBB(crateTransform, mgl64.Vec3{1, 1, 1}))
	crate.Attribute = collision.AttributeBit(attributeObstacle)
	registry.Colliders3D.Add(listen("crate", crate))

	scene := &Scene{
		Registry: registry,
		velocity: mgl64.Vec3{4, 0, 0},
		radius:   0.5,
	}
	scene.ball = registry.Colliders3D.Add(listen("ball", scene.ballInfo(mgl64.Vec3{-2, 0.5, 0})))

	return scene
}

func (s *Scene) ballInfo(center mgl64.Vec3) collision.Collider3D {
	ball := collision.NewCollider3D(shape3d.Sphere{Center: center, Radius: s.radius})
	ball.Attribute = collision.AttributeBit(attributeBall)
	return ball
}

// Step moves the ball, refreshes its collider then runs the collision pass
func (s *Scene) Step(dt float64) mgl64.Vec3 {
	info, _ := s.Registry.Colliders3D.Info(s.ball)
	center := info.Shape.(shape3d.Sphere).Center.Add(s.velocity.Mul(dt))

	s.Registry.Colliders3D.UpdateColliderInfo(s.ball, s.ballInfo(center))
	s.Registry.Update()

	return center
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load(viper.New())
	}
	return config.LoadFile(path)
}

func main() {
	configPath := flag.String("config", "", "configuration file (yaml, json or toml)")
	steps := flag.Int("steps", 180, "number of simulated frames")
	showMetrics := flag.Bool("metrics", false, "print the collision metrics at the end")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg, "collision")
	if err != nil {
		log.Fatal("could not register metrics", zap.Error(err))
	}

	registry := collision.NewRegistry(cfg.Collision, collision.WithLogger(log), collision.WithMetrics(m))
	scene := SetupScene(registry)

	const dt float64 = 1.0 / 60.0

	for step := 0; step < *steps; step++ {
		fmt.Printf("--- STEP %d ---\n", step+1)
		center := scene.Step(dt)
		fmt.Printf("  ball at %v\n", center)
	}

	if *showMetrics {
		families, err := reg.Gather()
		if err != nil {
			log.Error("could not gather metrics", zap.Error(err))
			return
		}
		for _, family := range families {
			for _, metric := range family.GetMetric() {
				fmt.Printf("%s %v\n", family.GetName(), metric)
			}
		}
	}
}
