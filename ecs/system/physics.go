package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
	"github.com/milk9111/mococo/prefabs"
)

const (
	collisionTypePiece cp.CollisionType = iota + 1
	collisionTypeWall
	collisionTypeFinish
)

const wallThickness = 0.1

// PhysicsSystem is the rigid body adapter. It mirrors every simulated piece
// into a Chipmunk space, steps it and turns Chipmunk callbacks into world
// contacts.
type PhysicsSystem struct {
	tuning        prefabs.Tuning
	space         *cp.Space
	handlersReady bool
	wellReady     bool

	bodies map[ecs.Entity]*bodyInfo
	shapes map[*cp.Shape]ecs.Entity

	touching []contactPair
	inZone   []ecs.Entity
	begun    []contactPair
	ended    []contactPair
	exited   []ecs.Entity
}

type bodyInfo struct {
	body    *cp.Body
	shape   *cp.Shape
	radius  float64
	inSpace bool
}

type contactPair struct {
	a ecs.Entity
	b ecs.Entity
}

func makePair(a, b ecs.Entity) contactPair {
	if b < a {
		a, b = b, a
	}
	return contactPair{a: a, b: b}
}

func (p contactPair) has(e ecs.Entity) bool {
	return p.a == e || p.b == e
}

func NewPhysicsSystem(tuning prefabs.Tuning) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: tuning.Gravity})
	return &PhysicsSystem{
		tuning: tuning,
		space:  space,
		bodies: make(map[ecs.Entity]*bodyInfo),
		shapes: make(map[*cp.Shape]ecs.Entity),
	}
}

// Space returns the underlying Chipmunk space.
func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}

	ps.ensureHandlers()
	ps.ensureWell()
	ps.syncBodies(w)

	ps.space.Step(ps.tuning.TickSeconds())

	ps.syncTransforms(w)
	ps.emitContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	pieceHandler := ps.space.NewCollisionHandler(collisionTypePiece, collisionTypePiece)
	pieceHandler.UserData = ps
	pieceHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		if pair, ok := sys.pairOf(arb); ok {
			sys.touch(pair)
		}
		return true
	}
	pieceHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return
		}
		if pair, ok := sys.pairOf(arb); ok {
			sys.untouch(pair)
		}
	}

	zoneHandler := ps.space.NewCollisionHandler(collisionTypePiece, collisionTypeFinish)
	zoneHandler.UserData = ps
	zoneHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		if e, ok := sys.pieceOf(arb); ok {
			sys.enter(e)
		}
		return true
	}
	zoneHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return
		}
		if e, ok := sys.pieceOf(arb); ok {
			sys.leave(e)
		}
	}

	ps.handlersReady = true
}

// ensureWell builds the floor, both walls and the danger zone sensor. Inner
// faces sit exactly on x = ±width/2 and y = 0.
func (ps *PhysicsSystem) ensureWell() {
	if ps.wellReady {
		return
	}
	well := ps.tuning.Well
	half := well.Width / 2
	top := well.Height + well.SpawnHeight

	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: -half - wallThickness, Y: -wallThickness}, b: cp.Vector{X: half + wallThickness, Y: -wallThickness}}, // floor
		{a: cp.Vector{X: -half - wallThickness, Y: -wallThickness}, b: cp.Vector{X: -half - wallThickness, Y: top}},           // left
		{a: cp.Vector{X: half + wallThickness, Y: -wallThickness}, b: cp.Vector{X: half + wallThickness, Y: top}},             // right
	}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, wallThickness)
		shape.SetFriction(well.Friction)
		shape.SetElasticity(well.Elasticity)
		shape.SetCollisionType(collisionTypeWall)
		ps.space.AddShape(shape)
	}

	zone := cp.NewBox2(ps.space.StaticBody, cp.BB{L: -half, B: well.DangerLine, R: half, T: well.Height}, 0)
	zone.SetSensor(true)
	zone.SetCollisionType(collisionTypeFinish)
	ps.space.AddShape(zone)

	ps.wellReady = true
}

func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	ecs.ForEach2(w, component.PieceComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, p *component.Piece, b *component.Body) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}

		info := ps.bodies[e]
		if !p.Active || !b.Simulated {
			b.ZeroVelocity = false
			if info != nil && info.inSpace {
				ps.detach(e, info)
			}
			return
		}

		radius := t.Scale / 2
		if radius <= 0 {
			radius = ps.tuning.Diameter(p.Level) / 2
		}

		if info == nil {
			info = ps.newBody(e, radius)
			ps.bodies[e] = info
		}

		if !info.inSpace {
			if info.radius != radius {
				ps.reshape(e, info, radius)
			}
			info.body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
			info.body.SetAngle(0)
			info.body.SetVelocityVector(cp.Vector{})
			info.body.SetAngularVelocity(0)
			ps.space.AddBody(info.body)
			ps.space.AddShape(info.shape)
			info.inSpace = true
		} else if info.radius != radius {
			ps.space.RemoveShape(info.shape)
			ps.reshape(e, info, radius)
			ps.space.AddShape(info.shape)
		}

		if b.ZeroVelocity {
			info.body.SetVelocityVector(cp.Vector{})
			info.body.SetAngularVelocity(0)
			b.ZeroVelocity = false
		}
	})
}

func (ps *PhysicsSystem) newBody(e ecs.Entity, radius float64) *bodyInfo {
	mass, moment := circleMass(radius)
	body := cp.NewBody(mass, moment)
	info := &bodyInfo{body: body}
	ps.reshape(e, info, radius)
	return info
}

// reshape swaps the circle for one of a new radius. The old shape must
// already be out of the space.
func (ps *PhysicsSystem) reshape(e ecs.Entity, info *bodyInfo, radius float64) {
	if info.shape != nil {
		delete(ps.shapes, info.shape)
	}
	mass, moment := circleMass(radius)
	info.body.SetMass(mass)
	info.body.SetMoment(moment)

	shape := cp.NewCircle(info.body, radius, cp.Vector{})
	shape.SetFriction(ps.tuning.Well.Friction)
	shape.SetElasticity(ps.tuning.Well.Elasticity)
	shape.SetCollisionType(collisionTypePiece)

	info.shape = shape
	info.radius = radius
	ps.shapes[shape] = e
}

func circleMass(radius float64) (float64, float64) {
	mass := math.Pi * radius * radius
	if mass <= 0 {
		mass = 1
	}
	return mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{})
}

func (ps *PhysicsSystem) detach(e ecs.Entity, info *bodyInfo) {
	ps.space.RemoveShape(info.shape)
	ps.space.RemoveBody(info.body)
	info.inSpace = false

	// Chipmunk may or may not report separation for removed shapes; drop any
	// leftovers without reporting them.
	kept := ps.touching[:0]
	for _, p := range ps.touching {
		if !p.has(e) {
			kept = append(kept, p)
		}
	}
	ps.touching = kept
	ps.inZone = removeEntity(ps.inZone, e)
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.bodies {
		if !info.inSpace {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		t.X = pos.X
		t.Y = pos.Y
	}
}

func (ps *PhysicsSystem) emitContacts(w *ecs.World) {
	q := w.Contacts()
	for _, p := range ps.begun {
		q.Push(ecs.Contact{Kind: ecs.ContactBegin, A: p.a, B: p.b})
	}
	for _, p := range ps.touching {
		q.Push(ecs.Contact{Kind: ecs.ContactStay, A: p.a, B: p.b})
	}
	for _, p := range ps.ended {
		q.Push(ecs.Contact{Kind: ecs.ContactEnd, A: p.a, B: p.b})
	}
	for _, e := range ps.inZone {
		q.Push(ecs.Contact{Kind: ecs.TriggerStay, A: e})
	}
	for _, e := range ps.exited {
		q.Push(ecs.Contact{Kind: ecs.TriggerExit, A: e})
	}
	ps.begun = ps.begun[:0]
	ps.ended = ps.ended[:0]
	ps.exited = ps.exited[:0]
}

func (ps *PhysicsSystem) pairOf(arb *cp.Arbiter) (contactPair, bool) {
	shapeA, shapeB := arb.Shapes()
	a, okA := ps.shapes[shapeA]
	b, okB := ps.shapes[shapeB]
	if !okA || !okB || a == b {
		return contactPair{}, false
	}
	return makePair(a, b), true
}

func (ps *PhysicsSystem) pieceOf(arb *cp.Arbiter) (ecs.Entity, bool) {
	shapeA, shapeB := arb.Shapes()
	if e, ok := ps.shapes[shapeA]; ok {
		return e, true
	}
	e, ok := ps.shapes[shapeB]
	return e, ok
}

func (ps *PhysicsSystem) touch(p contactPair) {
	for _, q := range ps.touching {
		if q == p {
			return
		}
	}
	ps.touching = append(ps.touching, p)
	ps.begun = append(ps.begun, p)
}

func (ps *PhysicsSystem) untouch(p contactPair) {
	for i, q := range ps.touching {
		if q == p {
			ps.touching = append(ps.touching[:i], ps.touching[i+1:]...)
			ps.ended = append(ps.ended, p)
			return
		}
	}
}

func (ps *PhysicsSystem) enter(e ecs.Entity) {
	for _, z := range ps.inZone {
		if z == e {
			return
		}
	}
	ps.inZone = append(ps.inZone, e)
}

func (ps *PhysicsSystem) leave(e ecs.Entity) {
	before := len(ps.inZone)
	ps.inZone = removeEntity(ps.inZone, e)
	if len(ps.inZone) != before {
		ps.exited = append(ps.exited, e)
	}
}

func removeEntity(list []ecs.Entity, e ecs.Entity) []ecs.Entity {
	out := list[:0]
	for _, x := range list {
		if x != e {
			out = append(out, x)
		}
	}
	return out
}
