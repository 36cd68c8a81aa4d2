package visual

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/sciviz/internal/engine/gpu"
	"github.com/Faultbox/sciviz/internal/engine/picking"
	"github.com/Faultbox/sciviz/internal/engine/transform"
	"github.com/Faultbox/sciviz/internal/logger"
	"github.com/Faultbox/sciviz/pkg/math"
)

var (
	ErrNoContext    = errors.New("visual: no current GL context")
	ErrUnknownModel = errors.New("visual: unknown model")
)

// ContextChecker reports whether a GL context is current on this thread.
// window.Resources satisfies it.
type ContextChecker interface {
	ContextCurrent() bool
}

// Scene owns a set of models and the programs and camera they render with.
type Scene struct {
	res  ContextChecker
	dev  gpu.Device
	prog uint32
	text uint32

	models map[uuid.UUID]*Model
	order  []uuid.UUID

	camera     transform.Transform
	projection math.Mat4

	log *zap.Logger
}

// NewScene returns an empty scene drawing with the graphics program prog
// and the text program textProg. textProg may be 0 for a scene without
// labels.
func NewScene(res ContextChecker, dev gpu.Device, prog, textProg uint32) *Scene {
	return &Scene{
		res:        res,
		dev:        dev,
		prog:       prog,
		text:       textProg,
		models:     make(map[uuid.UUID]*Model),
		camera:     transform.New(),
		projection: math.Identity(),
		log:        logger.Named("scene"),
	}
}

func (s *Scene) Device() gpu.Device { return s.dev }

func (s *Scene) GraphicsProgram() uint32 { return s.prog }

func (s *Scene) TextProgram() uint32 { return s.text }

// SetPrograms swaps in new programs, as after a shader reload. Existing
// labels keep the text program they were created with.
func (s *Scene) SetPrograms(prog, textProg uint32) {
	s.prog = prog
	s.text = textProg
	s.log.Debug("programs set", zap.Uint32("graphics", prog), zap.Uint32("text", textProg))
}

// NewModel creates a model at offset in this scene, builds it and adds it.
func (s *Scene) NewModel(offset math.Vec3, g Geometry) *Model {
	m := New(s, offset, g)
	m.Finalize()
	s.insert(m)
	return m
}

// Add adopts m. A detached model is attached to the scene; a model that
// already belongs to another parent is rejected.
func (s *Scene) Add(m *Model) (uuid.UUID, error) {
	if m.parent != Parent(s) {
		if err := m.SetParent(s); err != nil {
			return uuid.Nil, err
		}
	}
	s.insert(m)
	return m.id, nil
}

func (s *Scene) insert(m *Model) {
	if _, ok := s.models[m.id]; ok {
		return
	}
	s.models[m.id] = m
	s.order = append(s.order, m.id)
	s.log.Debug("model added", zap.Stringer("model", m.id), zap.Int("models", len(s.order)))
}

// Model returns the model registered under id.
func (s *Scene) Model(id uuid.UUID) (*Model, bool) {
	m, ok := s.models[id]
	return m, ok
}

// Models returns the models in the order they were added.
func (s *Scene) Models() []*Model {
	out := make([]*Model, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.models[id])
	}
	return out
}

// Remove releases the model registered under id and drops it.
func (s *Scene) Remove(id uuid.UUID) error {
	m, ok := s.models[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownModel, id)
	}
	m.Close()
	delete(s.models, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// SetPerspective sets the projection matrix.
func (s *Scene) SetPerspective(fovY, aspect, near, far float32) {
	s.projection = math.Perspective(fovY, aspect, near, far)
}

func (s *Scene) Projection() math.Mat4 { return s.projection }

// Camera returns the scene transform applied to every model.
func (s *Scene) Camera() *transform.Transform { return &s.camera }

// CameraPosition returns the eye position in world space.
func (s *Scene) CameraPosition() math.Vec3 {
	return s.camera.Matrix().Inverse().TransformPoint(math.Vec3{})
}

func (s *Scene) setProjection(prog uint32) {
	if prog == 0 {
		return
	}
	s.dev.UseProgram(prog)
	if loc := s.dev.UniformLocation(prog, "p_matrix"); loc != gpu.NoUniform {
		s.dev.UniformMatrix4(loc, s.projection)
	}
}

// Pick returns the visible model whose bounding box is hit first by the
// ray through pixel (x, y) of a width x height viewport.
func (s *Scene) Pick(x, y, width, height float32) (*Model, bool) {
	view := s.camera.Matrix()
	var (
		best     *Model
		bestDist float32
	)
	for _, id := range s.order {
		m := s.models[id]
		if m.hide || len(m.Indices()) == 0 {
			continue
		}
		ext, err := m.VertexMaxMins()
		if err != nil {
			s.log.Warn("skipping model in pick", zap.Stringer("model", id), zap.Error(err))
			continue
		}
		m.SetSceneMatrix(view)
		// eye space from the model's vertex space
		toEye := m.SceneMatrix().Mul(m.ViewMatrix())
		ray := picking.ScreenToRay(x, y, width, height, s.projection.Mul(toEye).Inverse())
		t, hit := ray.IntersectAABB(picking.FromExtents(ext))
		if !hit {
			continue
		}
		d := toEye.TransformPoint(ray.At(t)).Length()
		if best == nil || d < bestDist {
			best, bestDist = m, d
		}
	}
	return best, best != nil
}

// Render draws every visible model. It needs a current GL context.
func (s *Scene) Render() error {
	if s.res == nil || !s.res.ContextCurrent() {
		return ErrNoContext
	}
	prev := s.dev.CurrentProgram()
	s.setProjection(s.prog)
	s.setProjection(s.text)
	s.dev.UseProgram(prev)

	view := s.camera.Matrix()
	for _, id := range s.order {
		m := s.models[id]
		m.SetSceneMatrix(view)
		m.Render()
	}
	return nil
}

// Close releases every model.
func (s *Scene) Close() {
	for _, id := range s.order {
		s.models[id].Close()
	}
	s.models = make(map[uuid.UUID]*Model)
	s.order = nil
}
