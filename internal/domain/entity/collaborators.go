package entity

//go:generate go tool mockgen -destination=./mocks/animator_mock.go -package=mocks . Animator
//go:generate go tool mockgen -destination=./mocks/spawner_mock.go -package=mocks . Spawner

// Animator plays named clips and reports when a finite clip ends.
type Animator interface {
	// Play starts clip from its first frame.
	Play(clip string)
	// OnceFinished registers fn for the next clip completion only.
	// The returned func unsubscribes; calling it after fn ran is a no-op.
	OnceFinished(fn func()) (cancel func())
}

// Spawner instantiates projectiles on behalf of an attacking actor.
type Spawner interface {
	Spawn(owner *Actor) (*Projectile, error)
}

// Screen reports the visible area's size.
type Screen interface {
	Size() (width, height float64)
}
