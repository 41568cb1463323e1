package camera

import (
	"math"

	"TerrainVision/shared/config"
	"TerrainVision/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	defaultAngleY = 45.0 * rl.Deg2rad  // Azimute inicial
	defaultAngleX = -35.0 * rl.Deg2rad // Elevação inicial (olhando de cima)

	maxElev = -5.0 * rl.Deg2rad  // Quase horizonte
	minElev = -89.0 * rl.Deg2rad // Quase topo
)

// CameraController orbita a câmera em torno do centro do terreno.
// Zoom e ângulos são suavizados entre o estado alvo e o atual.
type CameraController struct {
	// Estado interno do Raylib
	RLCamera rl.Camera3D

	// Configurações
	MinZoom          float32
	MaxZoom          float32
	ZoomStep         float32
	RotateSpeed      float32 // Radianos por segundo (setas)
	MouseSensitivity float32
	SmoothFactor     float32 // 0.0 a 1.0 (quanto menor, mais suave/lento)

	// Estado Alvo (para interpolação suave)
	TargetLookAt rl.Vector3
	TargetZoom   float32
	TargetAngleY float32 // Rotação horizontal (radianos)
	TargetAngleX float32 // Elevação (radianos)

	// Estado Atual (interpolado)
	CurrentZoom   float32
	CurrentAngleY float32
	CurrentAngleX float32

	homeZoom float32
}

// New cria um novo controlador de câmera a partir da configuração.
func New(cfg *config.Config) *CameraController {
	c := &CameraController{
		MinZoom:          cfg.MinDistance,
		MaxZoom:          cfg.MaxDistance,
		ZoomStep:         cfg.ZoomStep,
		RotateSpeed:      cfg.RotateSpeed * rl.Deg2rad,
		MouseSensitivity: cfg.CameraSensitivity,
		SmoothFactor:     0.2,
	}
	if c.MaxZoom < c.MinZoom {
		c.MinZoom, c.MaxZoom = c.MaxZoom, c.MinZoom
	}
	c.homeZoom = util.Clamp(cfg.CameraDistance, c.MinZoom, c.MaxZoom)

	fovy := cfg.FOV
	if fovy <= 0 {
		fovy = 45.0
	}
	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       fovy,
		Projection: rl.CameraPerspective,
	}

	c.Reset()
	return c
}

// Reset volta ao enquadramento inicial sem suavização.
func (c *CameraController) Reset() {
	c.TargetZoom = c.homeZoom
	c.TargetAngleY = defaultAngleY
	c.TargetAngleX = defaultAngleX

	// Inicializa os valores atuais com os alvos para não "saltar"
	c.CurrentZoom = c.TargetZoom
	c.CurrentAngleY = c.TargetAngleY
	c.CurrentAngleX = c.TargetAngleX
	c.updatePosition()
}

// SetTarget define o ponto observado (centro do terreno).
func (c *CameraController) SetTarget(pos rl.Vector3) {
	c.TargetLookAt = pos
	c.updatePosition()
}

// Zoom altera a distância alvo, limitada a [MinZoom, MaxZoom].
func (c *CameraController) Zoom(delta float32) {
	c.TargetZoom = util.Clamp(c.TargetZoom+delta, c.MinZoom, c.MaxZoom)
}

// Rotate gira a órbita. A elevação fica entre quase-topo e quase-horizonte
// para a câmera nunca virar de ponta cabeça.
func (c *CameraController) Rotate(dYaw, dPitch float32) {
	c.TargetAngleY += dYaw
	c.TargetAngleX = util.Clamp(c.TargetAngleX+dPitch, float32(minElev), float32(maxElev))
}

// Update interpola o estado atual em direção ao alvo. Deve ser chamado a cada frame.
func (c *CameraController) Update(dt float32) {
	factor := c.SmoothFactor * 60.0 * dt // Normaliza para 60 FPS
	if factor > 1.0 {
		factor = 1.0
	}

	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)
	c.CurrentAngleY = util.Lerp(c.CurrentAngleY, c.TargetAngleY, factor)
	c.CurrentAngleX = util.Lerp(c.CurrentAngleX, c.TargetAngleX, factor)

	c.updatePosition()
}

// updatePosition converte coordenadas esféricas em posição cartesiana:
// X = r·cos(φ)·sin(θ), Y = -r·sin(φ), Z = r·cos(φ)·cos(θ).
func (c *CameraController) updatePosition() {
	cosX := float32(math.Cos(float64(c.CurrentAngleX)))
	sinX := float32(math.Sin(float64(c.CurrentAngleX)))
	cosY := float32(math.Cos(float64(c.CurrentAngleY)))
	sinY := float32(math.Sin(float64(c.CurrentAngleY)))

	target := mgl32.Vec3{c.TargetLookAt.X, c.TargetLookAt.Y, c.TargetLookAt.Z}
	offset := mgl32.Vec3{cosX * sinY, -sinX, cosX * cosY}.Mul(c.CurrentZoom)
	pos := target.Add(offset)

	c.RLCamera.Position = rl.Vector3{X: pos.X(), Y: pos.Y(), Z: pos.Z()}
	c.RLCamera.Target = c.TargetLookAt
}

// HandleInput processa setas, zoom e, com o mouse capturado, a órbita pelo mouse.
// Retorna true se houve input de movimento.
func (c *CameraController) HandleInput(dt float32, mouseCaptured bool) bool {
	moved := false

	// Rotação contínua com as setas
	step := c.RotateSpeed * dt
	if rl.IsKeyDown(rl.KeyLeft) {
		c.Rotate(-step, 0)
		moved = true
	}
	if rl.IsKeyDown(rl.KeyRight) {
		c.Rotate(step, 0)
		moved = true
	}
	if rl.IsKeyDown(rl.KeyUp) {
		c.Rotate(0, -step)
		moved = true
	}
	if rl.IsKeyDown(rl.KeyDown) {
		c.Rotate(0, step)
		moved = true
	}

	// Zoom discreto: '+' ou '=' aproxima, '-' afasta
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		c.Zoom(-c.ZoomStep)
		moved = true
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		c.Zoom(c.ZoomStep)
		moved = true
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Zoom(-wheel * c.ZoomStep)
		moved = true
	}

	// Órbita com o mouse capturado
	if mouseCaptured {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			c.Rotate(-delta.X*c.MouseSensitivity*0.01, -delta.Y*c.MouseSensitivity*0.01)
			moved = true
		}
	}

	return moved
}
